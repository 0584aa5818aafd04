package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dancojocaru2000/ttt-server/internal/api/apierr"
	"github.com/dancojocaru2000/ttt-server/internal/services/ratelimit"
)

// RateLimitResponse is the body returned on a rate-limit denial
type RateLimitResponse struct {
	Error      apierr.APIError `json:"error"`
	Limiter    string          `json:"limiter"`
	RetryAfter time.Time       `json:"retryAfter"`
}

// RateLimit creates middleware that consults the domain rate limiter
// before letting a request through. The caller identity is the client
// IP; denials carry a Retry-After header and the limiter class so the
// client can tell why it was limited.
func RateLimit(limiter *ratelimit.Limiter, limiterType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := limiter.Check(limiterType, ClientIP(r))
			if !decision.Allowed {
				writeRateLimited(w, decision)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeRateLimited(w http.ResponseWriter, decision ratelimit.Decision) {
	if retryIn := time.Until(decision.RetryAfter); retryIn > 0 {
		seconds := int64(retryIn.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(RateLimitResponse{
		Error: apierr.APIError{
			Code:    apierr.CodeRateLimited,
			Message: "Too many attempts",
		},
		Limiter:    decision.Type,
		RetryAfter: decision.RetryAfter,
	})
}

// ClientIP resolves the caller's network address, preferring the first
// X-Forwarded-For hop when present
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, found := strings.Cut(fwd, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
