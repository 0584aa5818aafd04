package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dancojocaru2000/ttt-server/internal/api/handler"
	"github.com/dancojocaru2000/ttt-server/internal/api/middleware"
	"github.com/dancojocaru2000/ttt-server/internal/services/account"
	"github.com/dancojocaru2000/ttt-server/internal/services/games"
	"github.com/dancojocaru2000/ttt-server/internal/services/ratelimit"
)

// LimiterTypeLoginRedeem tags redemption attempts in the rate limiter
const LimiterTypeLoginRedeem = "login_code_redeem"

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AccountService *account.Service
	GamesService   *games.Service
	RateLimiter    *ratelimit.Limiter
	Throttle       *middleware.Throttle
	// EnableSlowMode installs the X-Slow-Mode delay middleware; keep
	// it off in production
	EnableSlowMode bool
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	metaHandler := handler.NewMetaHandler()
	userHandler := handler.NewUserHandler(cfg.AccountService)
	gameHandler := handler.NewGameHandler(cfg.GamesService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.Secret())
	if cfg.EnableSlowMode {
		api.Use(middleware.SlowMode())
	}

	throttled := func(h http.HandlerFunc) http.Handler {
		if cfg.Throttle == nil {
			return h
		}
		return cfg.Throttle.Middleware()(h)
	}

	// Meta routes
	api.HandleFunc("/meta/nickRegex", metaHandler.NickRegex).Methods(http.MethodGet)

	// Game routes
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games", redirectTo("/api/game")).Methods(http.MethodPost)
	api.Handle("/game", throttled(gameHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/game/{gameId}", gameHandler.Get).Methods(http.MethodGet)
	api.Handle("/game/{gameId}", throttled(gameHandler.Update)).Methods(http.MethodPatch)

	// User routes; login/code must be registered before the {userId}
	// wildcards
	api.HandleFunc("/users", userHandler.List).Methods(http.MethodGet)
	api.Handle("/user/new", throttled(userHandler.Register)).Methods(http.MethodPost)
	api.Handle("/user/login/code",
		middleware.RateLimit(cfg.RateLimiter, LimiterTypeLoginRedeem)(
			http.HandlerFunc(userHandler.RedeemCode),
		),
	).Methods(http.MethodPost)
	api.HandleFunc("/user/{userId}/code", userHandler.IssueCode).Methods(http.MethodGet)
	api.HandleFunc("/user/{userId}", userHandler.Get).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

// redirectTo preserves the original API's POST /games alias
func redirectTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
