package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dancojocaru2000/ttt-server/internal/api/apierr"
)

// ThrottleConfig holds the transport-level burst throttle settings.
// This is a coarse per-IP guard on mutating routes, separate from the
// domain rate limiter that governs login-code redemption.
type ThrottleConfig struct {
	RPS   int
	Burst int
	TTL   time.Duration
}

// DefaultThrottleConfig returns default throttle settings
func DefaultThrottleConfig() ThrottleConfig {
	return ThrottleConfig{
		RPS:   5,
		Burst: 10,
		TTL:   time.Hour,
	}
}

// limiterWithTime pairs a token bucket with its last access time so
// idle entries can be evicted
type limiterWithTime struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Throttle is a keyed token-bucket throttle over client IPs
type Throttle struct {
	cfg ThrottleConfig

	mu       sync.Mutex
	limiters map[string]*limiterWithTime
}

// NewThrottle creates a new Throttle
func NewThrottle(cfg ThrottleConfig) *Throttle {
	if cfg.RPS <= 0 {
		cfg.RPS = DefaultThrottleConfig().RPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultThrottleConfig().Burst
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultThrottleConfig().TTL
	}
	return &Throttle{
		cfg:      cfg,
		limiters: make(map[string]*limiterWithTime),
	}
}

// Middleware rejects requests whose client IP has exhausted its burst
func (t *Throttle) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !t.limiter(ClientIP(r)).Allow() {
				apierr.WriteError(w, apierr.NewTooManyRequestsError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (t *Throttle) limiter(key string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	if lt, ok := t.limiters[key]; ok {
		lt.lastAccess = time.Now()
		return lt.limiter
	}

	lt := &limiterWithTime{
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(t.cfg.RPS)), t.cfg.Burst),
		lastAccess: time.Now(),
	}
	t.limiters[key] = lt
	return lt.limiter
}

// Run evicts limiters idle for longer than TTL until ctx is cancelled
func (t *Throttle) Run(ctx context.Context) {
	ticker := time.NewTicker(t.cfg.TTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.evictStale()
		}
	}
}

func (t *Throttle) evictStale() {
	cutoff := time.Now().Add(-t.cfg.TTL)

	t.mu.Lock()
	defer t.mu.Unlock()

	for key, lt := range t.limiters {
		if lt.lastAccess.Before(cutoff) {
			delete(t.limiters, key)
		}
	}
}
