// Package games transports game records through the document store.
// Games are opaque to the server: clients run the rules, the server
// keeps the records.
package games

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"github.com/dancojocaru2000/ttt-server/internal/model"
	"github.com/dancojocaru2000/ttt-server/internal/store"
)

// Service handles game record operations
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// New creates a new games service
func New(st store.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  st,
		logger: logger,
	}
}

// List returns all game records
func (s *Service) List(ctx context.Context) ([]model.Game, error) {
	db, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return db.Games, nil
}

// Get returns one game record
func (s *Service) Get(ctx context.Context, id model.GameID) (*model.Game, error) {
	db, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	game, found := lo.Find(db.Games, func(g model.Game) bool {
		return g.ID == id
	})
	if !found {
		return nil, model.ErrGameNotFound
	}
	return &game, nil
}

// Create appends a new game record
func (s *Service) Create(ctx context.Context, game model.Game) error {
	err := s.store.Update(ctx, func(db *model.Database) error {
		db.Games = append(db.Games, game)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("game created", slog.String("game_id", string(game.ID)))
	return nil
}

// Update replaces the stored record for id with game. The id cannot
// change; callers reject mismatches before the record reaches the
// store.
func (s *Service) Update(ctx context.Context, id model.GameID, game model.Game) error {
	if game.ID != id {
		return model.ErrGameIDMismatch
	}

	return s.store.Update(ctx, func(db *model.Database) error {
		_, idx, found := lo.FindIndexOf(db.Games, func(g model.Game) bool {
			return g.ID == id
		})
		if !found {
			return model.ErrGameNotFound
		}
		db.Games[idx] = game
		return nil
	})
}
