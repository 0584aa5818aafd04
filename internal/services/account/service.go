// Package account handles user registration, lookup and the login-code
// flow that authenticates a second device.
package account

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/dancojocaru2000/ttt-server/internal/model"
	"github.com/dancojocaru2000/ttt-server/internal/services/logincode"
	"github.com/dancojocaru2000/ttt-server/internal/store"
)

// NickPattern is the nickname rule: English letters, digits, dash and
// underscore, starting with a letter. Clients fetch it from the meta
// endpoint to validate before submitting.
const NickPattern = `^[A-Za-z][A-Za-z0-9-_]*$`

var nickRegex = regexp.MustCompile(NickPattern)

// Config holds configuration for the account service
type Config struct {
	// CodeValidity is how long an issued login code stays redeemable
	CodeValidity time.Duration
}

// DefaultConfig returns default account configuration
func DefaultConfig() Config {
	return Config{
		CodeValidity: 15 * time.Second,
	}
}

// Service handles account operations
type Service struct {
	store  store.Store
	codes  *logincode.Service
	logger *slog.Logger
	cfg    Config
}

// New creates a new account service
func New(st store.Store, codes *logincode.Service, cfg Config, logger *slog.Logger) *Service {
	if cfg.CodeValidity == 0 {
		cfg.CodeValidity = DefaultConfig().CodeValidity
	}
	return &Service{
		store:  st,
		codes:  codes,
		logger: logger,
		cfg:    cfg,
	}
}

// Register creates a new user with a fresh id and secret. Nickname
// validation and the uniqueness check run inside the store's exclusive
// section, the same section that persists the new user, so two
// concurrent registrations can never claim the same nickname.
// The returned user includes the secret; registration is one of the two
// places it is ever exposed.
func (s *Service) Register(ctx context.Context, nickname string) (*model.User, error) {
	if !nickRegex.MatchString(nickname) {
		return nil, model.ErrInvalidNickname
	}

	user, err := store.With(ctx, s.store, func(db *model.Database) (model.User, error) {
		taken := lo.SomeBy(db.Users, func(u model.User) bool {
			return u.Nickname == nickname
		})
		if taken {
			return model.User{}, model.ErrNicknameTaken
		}

		u := model.User{
			ID:       model.UserID(uuid.NewString()),
			Nickname: nickname,
			Secret:   uuid.NewString(),
			Friends:  []model.UserID{},
		}
		db.Users = append(db.Users, u)
		return u, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("user_id", string(user.ID)),
		slog.String("nickname", user.Nickname),
	)
	return &user, nil
}

// List returns all users with secrets redacted
func (s *Service) List(ctx context.Context) ([]model.User, error) {
	db, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(db.Users, func(u model.User, _ int) model.User {
		u.Secret = ""
		return u
	}), nil
}

// Get returns one user with the secret redacted
func (s *Service) Get(ctx context.Context, id model.UserID) (*model.User, error) {
	db, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	user, found := lo.Find(db.Users, func(u model.User) bool {
		return u.ID == id
	})
	if !found {
		return nil, model.ErrUserNotFound
	}
	user.Secret = ""
	return &user, nil
}

// IssueLoginCode mints a one-time login code for an already
// authenticated device. The caller must present the user's secret;
// comparison is constant-time.
func (s *Service) IssueLoginCode(ctx context.Context, id model.UserID, secret string) (logincode.Code, error) {
	db, err := s.store.Load(ctx)
	if err != nil {
		return logincode.Code{}, err
	}
	user, found := lo.Find(db.Users, func(u model.User) bool {
		return u.ID == id
	})
	if !found {
		return logincode.Code{}, model.ErrUserNotFound
	}
	if subtle.ConstantTimeCompare([]byte(user.Secret), []byte(secret)) != 1 {
		return logincode.Code{}, model.ErrInvalidSecret
	}

	code, err := s.codes.Issue(user.ID, s.cfg.CodeValidity)
	if err != nil {
		return logincode.Code{}, err
	}

	s.logger.Info("login code issued",
		slog.String("user_id", string(user.ID)),
		slog.Time("expires", code.ExpirationDate),
	)
	return code, nil
}

// RedeemLoginCode consumes a login code from an unauthenticated device
// and returns the full user record, secret included: this is the
// credential handoff to the second device. A code that is absent,
// reserved, expired or bound to a user that no longer resolves yields
// ErrCodeNotRedeemable; the caller maps it to an invalid-code response.
func (s *Service) RedeemLoginCode(ctx context.Context, code string) (*model.User, error) {
	userID, ok := s.codes.Redeem(code)
	if !ok {
		return nil, model.ErrCodeNotRedeemable
	}

	db, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	user, found := lo.Find(db.Users, func(u model.User) bool {
		return u.ID == userID
	})
	if !found {
		return nil, model.ErrCodeNotRedeemable
	}

	s.logger.Info("login code redeemed", slog.String("user_id", string(user.ID)))
	return &user, nil
}
