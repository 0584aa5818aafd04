// Package logincode implements the one-time login code registry.
//
// Codes are short numeric strings a user types on a second device to
// log in without a password. The registry is purely in-memory: nothing
// here is ever persisted. Each code string walks a three-state
// lifecycle, absent -> valid -> reserved -> absent. Valid never goes
// directly to absent; the reservation keeps a just-used digit string
// out of circulation for a cool-down window so a delayed or duplicated
// request cannot redeem a code that was meanwhile reissued to someone
// else.
package logincode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dancojocaru2000/ttt-server/internal/dependencies/clock"
	"github.com/dancojocaru2000/ttt-server/internal/dependencies/random"
	"github.com/dancojocaru2000/ttt-server/internal/model"
)

// ErrCodeSpaceExhausted is returned when Issue gives up after
// Config.MaxAttempts candidates. With the default unbounded retry it is
// never returned.
var ErrCodeSpaceExhausted = errors.New("could not generate a login code")

// codeLength is the number of digits in a code
const codeLength = 4

// entryState tags the variant of a code table entry
type entryState int

const (
	// stateValid marks a redeemable code bound to a user
	stateValid entryState = iota
	// stateReserved marks a cooling-down code that cannot be redeemed
	// or reissued until its window elapses
	stateReserved
)

// entry is one code table record. userID is only meaningful for
// stateValid; expiresAt is the validity deadline for valid entries and
// the cool-down deadline for reserved ones.
type entry struct {
	state     entryState
	userID    model.UserID
	expiresAt time.Time
}

// Code describes an issued login code
type Code struct {
	Code           string
	IssueDate      time.Time
	ExpirationDate time.Time
}

// Config holds configuration for the registry
type Config struct {
	// ReserveWindow is how long a used or expired code string stays
	// out of circulation before it may be reissued
	ReserveWindow time.Duration
	// SweepInterval is how often the background sweep runs
	SweepInterval time.Duration
	// MaxAttempts caps candidate generation per Issue call.
	// Zero preserves the retry-until-success contract.
	MaxAttempts int
}

// DefaultConfig returns default registry configuration
func DefaultConfig() Config {
	return Config{
		ReserveWindow: 5 * time.Second,
		SweepInterval: 500 * time.Millisecond,
		MaxAttempts:   0,
	}
}

// Service owns the code table. No other component holds a reference
// into it; all access goes through Issue, Redeem and the sweep, which
// share one mutex so there is at most one writer per entry at any
// instant.
type Service struct {
	clock  clock.Clock
	random random.Random
	logger *slog.Logger
	cfg    Config

	mu    sync.Mutex
	codes map[string]entry
}

// New creates a new login code registry
func New(clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *Service {
	if cfg.ReserveWindow == 0 {
		cfg.ReserveWindow = DefaultConfig().ReserveWindow
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = DefaultConfig().SweepInterval
	}
	return &Service{
		clock:  clk,
		random: rnd,
		logger: logger,
		cfg:    cfg,
		codes:  make(map[string]entry),
	}
}

// Issue mints a code bound to userID, valid for the given duration.
// Candidates are drawn uniformly from [0001, 9999] and rejected while
// they match the denylist or collide with any outstanding entry, valid
// or reserved; a code string is globally unique among outstanding codes
// at any instant.
func (s *Service) Issue(userID model.UserID, validity time.Duration) (Code, error) {
	issueDate := s.clock.Now()
	expirationDate := issueDate.Add(validity)

	s.mu.Lock()
	defer s.mu.Unlock()

	for attempts := 0; s.cfg.MaxAttempts == 0 || attempts < s.cfg.MaxAttempts; attempts++ {
		candidate := fmt.Sprintf("%0*d", codeLength, s.random.Intn(9999)+1)
		if Denylisted(candidate) {
			continue
		}
		if _, outstanding := s.codes[candidate]; outstanding {
			continue
		}

		s.codes[candidate] = entry{
			state:     stateValid,
			userID:    userID,
			expiresAt: expirationDate,
		}
		return Code{
			Code:           candidate,
			IssueDate:      issueDate,
			ExpirationDate: expirationDate,
		}, nil
	}

	return Code{}, ErrCodeSpaceExhausted
}

// Redeem consumes a code and returns the user it was bound to.
// Absent and reserved codes are not redeemable; neither is a valid code
// past its expiration, regardless of whether the sweep has seen it yet.
// A successful redemption moves the entry to reserved so the digit
// string cannot be reissued until the cool-down elapses.
func (s *Service) Redeem(code string) (model.UserID, bool) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.codes[code]
	if !ok {
		return "", false
	}

	switch e.state {
	case stateValid:
		if now.After(e.expiresAt) {
			// Expired but not yet swept; the sweep owns the
			// transition to reserved.
			return "", false
		}
		s.codes[code] = entry{
			state:     stateReserved,
			expiresAt: now.Add(s.cfg.ReserveWindow),
		}
		return e.userID, true
	case stateReserved:
		return "", false
	default:
		return "", false
	}
}

// Outstanding returns the number of entries in the table, valid or
// reserved. Exposed for health reporting and tests.
func (s *Service) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.codes)
}

// Run executes the background sweep every SweepInterval until ctx is
// cancelled. It shares the table mutex with Issue and Redeem, so a
// sweep never races a concurrent transition on the same entry.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep expires the table once: valid entries past their deadline
// become reserved with a fresh cool-down (an observer cannot tell "was
// used" from "timed out" by how soon the string frees up), and reserved
// entries past theirs are removed, making the string reissuable.
func (s *Service) Sweep() {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for code, e := range s.codes {
		if !now.After(e.expiresAt) {
			continue
		}
		switch e.state {
		case stateValid:
			s.codes[code] = entry{
				state:     stateReserved,
				expiresAt: now.Add(s.cfg.ReserveWindow),
			}
		case stateReserved:
			delete(s.codes, code)
		}
	}
}
