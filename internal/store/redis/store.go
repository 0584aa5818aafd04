// Package redis implements the document store on a Redis instance.
//
// The whole database is kept under a single key, mirroring the file
// backend's whole-aggregate discipline: every save rewrites the full
// document. The exclusive section is a local mutex; the deployment
// model is single-process, so no distributed lock is needed.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dancojocaru2000/ttt-server/internal/model"
	"github.com/dancojocaru2000/ttt-server/internal/store"
)

// databaseKey is the single key the whole document lives under
const databaseKey = "ttt:db"

// Storage is a Redis-backed implementation of the store interface
type Storage struct {
	client *redis.Client
	logger *slog.Logger

	mu sync.Mutex
}

// New creates a new Redis store instance
func New(cfg Config, logger *slog.Logger) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, logger: logger}, nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, logger *slog.Logger) *Storage {
	return &Storage{client: client, logger: logger}
}

// Ensure Storage implements the interface
var _ store.Store = (*Storage)(nil)

// Load reads the stored document. A missing key is a first run and
// yields an empty database; so does a document that fails to parse.
func (s *Storage) Load(ctx context.Context) (*model.Database, error) {
	data, err := s.client.Get(ctx, databaseKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("database key unreadable, starting fresh",
				slog.String("error", err.Error()),
			)
		}
		return model.NewDatabase(), nil
	}

	var db model.Database
	if err := json.Unmarshal(data, &db); err != nil {
		s.logger.Warn("database document corrupt, starting fresh",
			slog.String("error", err.Error()),
		)
		return model.NewDatabase(), nil
	}

	db.Normalize()
	return &db, nil
}

// Update implements the exclusive load/mutate/save cycle
func (s *Storage) Update(ctx context.Context, fn func(db *model.Database) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.Load(ctx)
	if err != nil {
		return err
	}

	if err := fn(db); err != nil {
		return err
	}

	return s.save(ctx, db)
}

// Save overwrites the stored document with db inside the exclusive section
func (s *Storage) Save(ctx context.Context, db *model.Database) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, db)
}

// save writes the whole database. Callers must hold mu.
func (s *Storage) save(ctx context.Context, db *model.Database) error {
	data, err := json.Marshal(db)
	if err != nil {
		return fmt.Errorf("serializing database: %w", err)
	}
	if err := s.client.Set(ctx, databaseKey, data, 0).Err(); err != nil {
		return fmt.Errorf("writing database document: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}
