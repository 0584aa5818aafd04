package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/dancojocaru2000/ttt-server/internal/model"
	"github.com/dancojocaru2000/ttt-server/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.storage = NewWithClient(client, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	_ = s.storage.Close()
}

func (s *StorageSuite) TestLoadMissingKeyYieldsEmptyDatabase() {
	db, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Empty(db.Users)
	s.Empty(db.Games)
}

func (s *StorageSuite) TestLoadCorruptDocumentYieldsEmptyDatabase() {
	s.Require().NoError(s.mini.Set("ttt:db", `{"users": [truncated`))

	db, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Empty(db.Users)
}

func (s *StorageSuite) TestUpdatePersistsMutation() {
	err := s.storage.Update(s.ctx, func(db *model.Database) error {
		db.Users = append(db.Users, model.User{ID: "u1", Nickname: "alice"})
		return nil
	})
	s.Require().NoError(err)

	db, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(db.Users, 1)
	s.Equal("alice", db.Users[0].Nickname)
}

func (s *StorageSuite) TestUpdateMutatorErrorPersistsNothing() {
	failure := errors.New("mutator failed")
	err := s.storage.Update(s.ctx, func(db *model.Database) error {
		db.Users = append(db.Users, model.User{ID: "u1"})
		return failure
	})
	s.ErrorIs(err, failure)

	s.False(s.mini.Exists("ttt:db"))
}

func (s *StorageSuite) TestSaveRoundTrip() {
	db := model.NewDatabase()
	db.Games = append(db.Games, model.Game{
		ID:        "g1",
		State:     model.GameStateMovingO,
		Moves:     []model.Move{{Position: 4, Mark: model.MarkX}},
		StartTime: "2024-01-01T12:00:00Z",
		Players:   model.Players{X: "u1", O: "u2"},
	})

	s.Require().NoError(s.storage.Save(s.ctx, db))

	loaded, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(db.Games, loaded.Games)
}
