// Package factory wires the application together: storage backend,
// clocks, the login-code registry, the rate limiter and the services.
package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/dancojocaru2000/ttt-server/internal/api/middleware"
	"github.com/dancojocaru2000/ttt-server/internal/dependencies/clock"
	"github.com/dancojocaru2000/ttt-server/internal/dependencies/random"
	"github.com/dancojocaru2000/ttt-server/internal/services/account"
	"github.com/dancojocaru2000/ttt-server/internal/services/games"
	"github.com/dancojocaru2000/ttt-server/internal/services/logincode"
	"github.com/dancojocaru2000/ttt-server/internal/services/ratelimit"
	"github.com/dancojocaru2000/ttt-server/internal/store"
	filestore "github.com/dancojocaru2000/ttt-server/internal/store/file"
	redisstore "github.com/dancojocaru2000/ttt-server/internal/store/redis"
)

// Storage type constants
const (
	StorageTypeFile  = "file"
	StorageTypeRedis = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Store store.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Core components
	LoginCodes  *logincode.Service
	RateLimiter *ratelimit.Limiter
	Throttle    *middleware.Throttle

	// Services
	AccountService *account.Service
	GamesService   *games.Service
}

// Config holds configuration for the application factory
type Config struct {
	// DBDir is the directory holding the backing file for the file
	// store; empty means the process working directory
	DBDir string
	// StorageType selects the storage backend ("file" or "redis").
	// If empty, defaults to "file".
	StorageType string
	// RedisConfig holds Redis connection settings (required if
	// StorageType is "redis")
	RedisConfig *redisstore.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// AccountConfig holds account service settings (optional)
	AccountConfig account.Config
	// CodeConfig holds login-code registry settings (optional)
	CodeConfig logincode.Config
	// RateLimitConfig holds rate limiter settings (optional)
	RateLimitConfig ratelimit.Config
	// ThrottleConfig holds transport throttle settings (optional)
	ThrottleConfig middleware.ThrottleConfig
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var st store.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeFile
	}

	switch storageType {
	case StorageTypeFile:
		st = filestore.New(cfg.DBDir, logger)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstore.New(*cfg.RedisConfig, logger)
		if err != nil {
			return nil, err
		}
		st = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'file' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(st, clk, rnd, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies
// (useful for testing)
func newWithDependencies(st store.Store, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	loginCodes := logincode.New(clk, rnd, cfg.CodeConfig, logger)
	rateLimiter := ratelimit.New(clk, cfg.RateLimitConfig)
	throttle := middleware.NewThrottle(cfg.ThrottleConfig)

	accountService := account.New(st, loginCodes, cfg.AccountConfig, logger)
	gamesService := games.New(st, logger)

	return &App{
		Store:          st,
		Clock:          clk,
		Random:         rnd,
		LoginCodes:     loginCodes,
		RateLimiter:    rateLimiter,
		Throttle:       throttle,
		AccountService: accountService,
		GamesService:   gamesService,
	}
}

// RunBackground starts the sweepers that expire login codes, evict
// stale rate-limit records and drop idle throttle buckets. They run
// until ctx is cancelled.
func (a *App) RunBackground(ctx context.Context) {
	go a.LoginCodes.Run(ctx)
	go a.RateLimiter.Run(ctx)
	go a.Throttle.Run(ctx)
}

// Close releases storage resources
func (a *App) Close() error {
	return a.Store.Close()
}
