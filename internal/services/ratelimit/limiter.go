// Package ratelimit implements a sliding-window attempt limiter keyed
// by (limiter type, caller identity). It backs the login-code
// redemption throttle but carries no knowledge of HTTP; callers decide
// what a type and an identity are.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/dancojocaru2000/ttt-server/internal/dependencies/clock"
)

// Limit is the capacity of one limiter class: at most Attempts allowed
// attempts within Window.
type Limit struct {
	Attempts int
	Window   time.Duration
}

// Config holds configuration for the limiter
type Config struct {
	// Limits maps limiter type tags to their capacity. Types without
	// an entry use Default.
	Limits map[string]Limit
	// Default applies to unconfigured limiter types
	Default Limit
	// SweepInterval is how often stale records are evicted
	SweepInterval time.Duration
}

// DefaultConfig returns default limiter configuration
func DefaultConfig() Config {
	return Config{
		Limits:        map[string]Limit{},
		Default:       Limit{Attempts: 5, Window: time.Minute},
		SweepInterval: time.Minute,
	}
}

// Decision is the outcome of a Check call
type Decision struct {
	// Allowed reports whether the attempt may proceed
	Allowed bool
	// RetryAfter is the instant after which a retry is permitted.
	// Only meaningful on denial.
	RetryAfter time.Time
	// Type is the limiter class that produced the decision, so the
	// caller can surface why it was limited
	Type string
}

// key identifies one tracked caller
type key struct {
	limiterType string
	identity    string
}

// Limiter tracks recent attempts per (type, identity) key. The records
// map is owned exclusively by the limiter; Check and the sweep share
// one mutex so read-then-decide-then-write sequences are atomic per
// key.
type Limiter struct {
	clock  clock.Clock
	cfg    Config
	mu     sync.Mutex
	record map[key][]time.Time
}

// New creates a new Limiter
func New(clk clock.Clock, cfg Config) *Limiter {
	if cfg.Default.Attempts == 0 {
		cfg.Default = DefaultConfig().Default
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = DefaultConfig().SweepInterval
	}
	return &Limiter{
		clock:  clk,
		cfg:    cfg,
		record: make(map[key][]time.Time),
	}
}

// limit resolves the capacity for a limiter type
func (l *Limiter) limit(limiterType string) Limit {
	if lim, ok := l.cfg.Limits[limiterType]; ok {
		return lim
	}
	return l.cfg.Default
}

// Check decides whether a new attempt by identity under limiterType may
// proceed. Allowed attempts are recorded; denied attempts are not, so
// RetryAfter stays fixed (and thus monotonically non-decreasing) while
// the caller remains inside the penalty window, and resets once the
// window fully elapses.
func (l *Limiter) Check(limiterType, identity string) Decision {
	lim := l.limit(limiterType)
	now := l.clock.Now()
	k := key{limiterType: limiterType, identity: identity}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Trim attempts that have left the window
	cutoff := now.Add(-lim.Window)
	attempts := l.record[k]
	trimmed := attempts[:0]
	for _, at := range attempts {
		if at.After(cutoff) {
			trimmed = append(trimmed, at)
		}
	}

	if len(trimmed) >= lim.Attempts {
		l.record[k] = trimmed
		return Decision{
			Allowed:    false,
			RetryAfter: trimmed[0].Add(lim.Window),
			Type:       limiterType,
		}
	}

	l.record[k] = append(trimmed, now)
	return Decision{Allowed: true, Type: limiterType}
}

// Run evicts stale records every SweepInterval until ctx is cancelled,
// keeping the table from growing unbounded.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(l.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}

// Sweep removes records whose window has fully elapsed with no further
// attempts.
func (l *Limiter) Sweep() {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, attempts := range l.record {
		cutoff := now.Add(-l.limit(k.limiterType).Window)
		stale := true
		for _, at := range attempts {
			if at.After(cutoff) {
				stale = false
				break
			}
		}
		if stale {
			delete(l.record, k)
		}
	}
}

// Tracked returns the number of tracked keys. Exposed for tests.
func (l *Limiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.record)
}
