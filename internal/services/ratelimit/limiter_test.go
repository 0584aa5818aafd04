package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dancojocaru2000/ttt-server/internal/dependencies/mocks"
)

const limiterType = "login_code_redeem"

type LimiterSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	limiter *Limiter
}

func TestLimiterSuite(t *testing.T) {
	suite.Run(t, new(LimiterSuite))
}

func (s *LimiterSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	cfg := DefaultConfig()
	cfg.Limits = map[string]Limit{
		limiterType: {Attempts: 3, Window: time.Minute},
	}
	s.limiter = New(s.clock, cfg)
}

// Check tests

func (s *LimiterSuite) TestAllowsUpToLimit() {
	for i := 0; i < 3; i++ {
		decision := s.limiter.Check(limiterType, "1.2.3.4")
		s.True(decision.Allowed, "attempt %d should be allowed", i+1)
	}

	decision := s.limiter.Check(limiterType, "1.2.3.4")
	s.False(decision.Allowed)
	s.Equal(limiterType, decision.Type)
}

func (s *LimiterSuite) TestRetryAfterIsOldestAttemptPlusWindow() {
	start := s.clock.Now()
	s.limiter.Check(limiterType, "1.2.3.4")
	s.clock.Advance(10 * time.Second)
	s.limiter.Check(limiterType, "1.2.3.4")
	s.limiter.Check(limiterType, "1.2.3.4")

	decision := s.limiter.Check(limiterType, "1.2.3.4")
	s.Require().False(decision.Allowed)
	s.Equal(start.Add(time.Minute), decision.RetryAfter)
}

func (s *LimiterSuite) TestDeniedAttemptsDoNotExtendPenalty() {
	start := s.clock.Now()
	for i := 0; i < 3; i++ {
		s.limiter.Check(limiterType, "1.2.3.4")
	}

	first := s.limiter.Check(limiterType, "1.2.3.4")
	s.clock.Advance(20 * time.Second)
	second := s.limiter.Check(limiterType, "1.2.3.4")

	s.Require().False(first.Allowed)
	s.Require().False(second.Allowed)
	s.Equal(start.Add(time.Minute), first.RetryAfter)
	s.Equal(first.RetryAfter, second.RetryAfter)
}

func (s *LimiterSuite) TestAllowsAgainAfterWindowElapses() {
	for i := 0; i < 3; i++ {
		s.limiter.Check(limiterType, "1.2.3.4")
	}
	s.Require().False(s.limiter.Check(limiterType, "1.2.3.4").Allowed)

	s.clock.Advance(61 * time.Second)

	s.True(s.limiter.Check(limiterType, "1.2.3.4").Allowed)
}

func (s *LimiterSuite) TestWindowSlides() {
	s.limiter.Check(limiterType, "1.2.3.4")
	s.clock.Advance(30 * time.Second)
	s.limiter.Check(limiterType, "1.2.3.4")
	s.limiter.Check(limiterType, "1.2.3.4")
	s.Require().False(s.limiter.Check(limiterType, "1.2.3.4").Allowed)

	// The oldest attempt falls out of the window; one slot frees up
	s.clock.Advance(31 * time.Second)
	s.True(s.limiter.Check(limiterType, "1.2.3.4").Allowed)
	s.False(s.limiter.Check(limiterType, "1.2.3.4").Allowed)
}

func (s *LimiterSuite) TestIdentitiesAreIndependent() {
	for i := 0; i < 3; i++ {
		s.limiter.Check(limiterType, "1.2.3.4")
	}
	s.Require().False(s.limiter.Check(limiterType, "1.2.3.4").Allowed)

	s.True(s.limiter.Check(limiterType, "5.6.7.8").Allowed)
}

func (s *LimiterSuite) TestTypesAreIndependent() {
	for i := 0; i < 3; i++ {
		s.limiter.Check(limiterType, "1.2.3.4")
	}
	s.Require().False(s.limiter.Check(limiterType, "1.2.3.4").Allowed)

	s.True(s.limiter.Check("other", "1.2.3.4").Allowed)
}

func (s *LimiterSuite) TestUnconfiguredTypeUsesDefault() {
	for i := 0; i < 5; i++ {
		s.True(s.limiter.Check("other", "1.2.3.4").Allowed)
	}
	s.False(s.limiter.Check("other", "1.2.3.4").Allowed)
}

// Sweep tests

func (s *LimiterSuite) TestSweepEvictsStaleRecords() {
	s.limiter.Check(limiterType, "1.2.3.4")
	s.limiter.Check(limiterType, "5.6.7.8")
	s.Require().Equal(2, s.limiter.Tracked())

	s.clock.Advance(61 * time.Second)
	s.limiter.Sweep()

	s.Equal(0, s.limiter.Tracked())
}

func (s *LimiterSuite) TestSweepKeepsRecentRecords() {
	s.limiter.Check(limiterType, "1.2.3.4")
	s.clock.Advance(40 * time.Second)
	s.limiter.Check(limiterType, "5.6.7.8")

	s.clock.Advance(30 * time.Second)
	s.limiter.Sweep()

	// The first identity's only attempt is 70s old, the second's is 30s
	s.Equal(1, s.limiter.Tracked())
}
