package factory

import (
	"github.com/dancojocaru2000/ttt-server/internal/dependencies/clock"
	"github.com/dancojocaru2000/ttt-server/internal/dependencies/random"
	"github.com/dancojocaru2000/ttt-server/internal/store"
	"github.com/dancojocaru2000/ttt-server/internal/testutil"
)

// NewForTest creates an App wired onto caller-provided storage, clock
// and randomness, with a no-op logger. Tests use it to drive time and
// code generation deterministically.
func NewForTest(st store.Store, clk clock.Clock, rnd random.Random, cfg Config) *App {
	return newWithDependencies(st, clk, rnd, cfg, testutil.NopLogger())
}
