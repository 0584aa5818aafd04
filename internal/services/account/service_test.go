package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dancojocaru2000/ttt-server/internal/dependencies/mocks"
	"github.com/dancojocaru2000/ttt-server/internal/model"
	"github.com/dancojocaru2000/ttt-server/internal/services/logincode"
	filestore "github.com/dancojocaru2000/ttt-server/internal/store/file"
	"github.com/dancojocaru2000/ttt-server/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *filestore.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	codes   *logincode.Service
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = filestore.New(s.T().TempDir(), testutil.NopLogger())
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.codes = logincode.New(s.clock, s.random, logincode.DefaultConfig(), testutil.NopLogger())
	s.service = New(s.storage, s.codes, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	user, err := s.service.Register(s.ctx, "alice")
	s.Require().NoError(err)

	s.NotEmpty(user.ID)
	s.Equal("alice", user.Nickname)
	s.NotEmpty(user.Secret)
	s.NotNil(user.Friends)
	s.Empty(user.Friends)
	s.Equal(0, user.Stats.Local.Total)
}

func (s *ServiceSuite) TestRegisterPersistsUser() {
	user, err := s.service.Register(s.ctx, "alice")
	s.Require().NoError(err)

	db, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(db.Users, 1)
	s.Equal(user.ID, db.Users[0].ID)
	s.Equal(user.Secret, db.Users[0].Secret)
}

func (s *ServiceSuite) TestRegisterRejectsInvalidNicknames() {
	for _, nickname := range []string{"", "1alice", "-alice", "_alice", "ali ce", "ali.ce", "ălice"} {
		_, err := s.service.Register(s.ctx, nickname)
		s.ErrorIs(err, model.ErrInvalidNickname, "nickname %q", nickname)
	}
}

func (s *ServiceSuite) TestRegisterAcceptsValidNicknames() {
	for _, nickname := range []string{"a", "Alice", "alice-2", "a_b-C3"} {
		_, err := s.service.Register(s.ctx, nickname)
		s.NoError(err, "nickname %q", nickname)
	}
}

func (s *ServiceSuite) TestRegisterRejectsTakenNickname() {
	_, err := s.service.Register(s.ctx, "alice")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "alice")
	s.ErrorIs(err, model.ErrNicknameTaken)

	db, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Len(db.Users, 1)
}

func (s *ServiceSuite) TestRegisterIssuesDistinctCredentials() {
	alice, err := s.service.Register(s.ctx, "alice")
	s.Require().NoError(err)
	bob, err := s.service.Register(s.ctx, "bob")
	s.Require().NoError(err)

	s.NotEqual(alice.ID, bob.ID)
	s.NotEqual(alice.Secret, bob.Secret)
}

// List and Get tests

func (s *ServiceSuite) TestListRedactsSecrets() {
	_, err := s.service.Register(s.ctx, "alice")
	s.Require().NoError(err)

	users, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Empty(users[0].Secret)
}

func (s *ServiceSuite) TestGetRedactsSecret() {
	registered, err := s.service.Register(s.ctx, "alice")
	s.Require().NoError(err)

	user, err := s.service.Get(s.ctx, registered.ID)
	s.Require().NoError(err)
	s.Equal("alice", user.Nickname)
	s.Empty(user.Secret)
}

func (s *ServiceSuite) TestGetUnknownUser() {
	_, err := s.service.Get(s.ctx, "missing")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// IssueLoginCode tests

func (s *ServiceSuite) TestIssueLoginCodeSucceeds() {
	user, err := s.service.Register(s.ctx, "alice")
	s.Require().NoError(err)

	s.random.QueueIntn(4241)
	code, err := s.service.IssueLoginCode(s.ctx, user.ID, user.Secret)
	s.Require().NoError(err)

	s.Equal("4242", code.Code)
	s.Equal(s.clock.Now(), code.IssueDate)
	s.Equal(s.clock.Now().Add(15*time.Second), code.ExpirationDate)
}

func (s *ServiceSuite) TestIssueLoginCodeRejectsWrongSecret() {
	user, err := s.service.Register(s.ctx, "alice")
	s.Require().NoError(err)

	_, err = s.service.IssueLoginCode(s.ctx, user.ID, "not-the-secret")
	s.ErrorIs(err, model.ErrInvalidSecret)
	s.Equal(0, s.codes.Outstanding())
}

func (s *ServiceSuite) TestIssueLoginCodeUnknownUser() {
	_, err := s.service.IssueLoginCode(s.ctx, "missing", "whatever")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// RedeemLoginCode tests

func (s *ServiceSuite) TestRedeemLoginCodeHandsOverCredentials() {
	user, err := s.service.Register(s.ctx, "alice")
	s.Require().NoError(err)

	s.random.QueueIntn(4241)
	code, err := s.service.IssueLoginCode(s.ctx, user.ID, user.Secret)
	s.Require().NoError(err)

	redeemed, err := s.service.RedeemLoginCode(s.ctx, code.Code)
	s.Require().NoError(err)

	s.Equal(user.ID, redeemed.ID)
	s.Equal(user.Secret, redeemed.Secret)
}

func (s *ServiceSuite) TestRedeemLoginCodeIsOneTime() {
	user, err := s.service.Register(s.ctx, "alice")
	s.Require().NoError(err)

	s.random.QueueIntn(4241)
	code, err := s.service.IssueLoginCode(s.ctx, user.ID, user.Secret)
	s.Require().NoError(err)

	_, err = s.service.RedeemLoginCode(s.ctx, code.Code)
	s.Require().NoError(err)

	_, err = s.service.RedeemLoginCode(s.ctx, code.Code)
	s.ErrorIs(err, model.ErrCodeNotRedeemable)
}

func (s *ServiceSuite) TestRedeemLoginCodeUnknownCode() {
	_, err := s.service.RedeemLoginCode(s.ctx, "4242")
	s.ErrorIs(err, model.ErrCodeNotRedeemable)
}

func (s *ServiceSuite) TestRedeemLoginCodeExpiredCode() {
	user, err := s.service.Register(s.ctx, "alice")
	s.Require().NoError(err)

	s.random.QueueIntn(4241)
	code, err := s.service.IssueLoginCode(s.ctx, user.ID, user.Secret)
	s.Require().NoError(err)

	s.clock.Advance(16 * time.Second)

	_, err = s.service.RedeemLoginCode(s.ctx, code.Code)
	s.ErrorIs(err, model.ErrCodeNotRedeemable)
}
