package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:54321"
	assert.Equal(t, "192.0.2.1", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 198.51.100.2")
	assert.Equal(t, "203.0.113.9", ClientIP(req))
}

func TestSecretReachesHandler(t *testing.T) {
	var seen string
	handler := Secret()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSecret(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SecretHeader, "my-secret")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "my-secret", seen)
}

func TestSecretAbsent(t *testing.T) {
	var seen string
	handler := Secret()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSecret(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, seen)
}

func TestThrottleAllowsBurstThenRejects(t *testing.T) {
	throttle := NewThrottle(ThrottleConfig{RPS: 1, Burst: 2, TTL: time.Hour})
	handler := throttle.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	status := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusNoContent, status("10.1.0.1"))
	require.Equal(t, http.StatusNoContent, status("10.1.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, status("10.1.0.1"))

	// Other clients keep their own buckets
	assert.Equal(t, http.StatusNoContent, status("10.1.0.2"))
}

func TestSlowModeDelaysResponse(t *testing.T) {
	handler := SlowMode()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Slow-Mode", "20")

	start := time.Now()
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSlowModeInactiveWithoutHeader(t *testing.T) {
	handler := SlowMode()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	start := time.Now()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Less(t, time.Since(start), slowModeDefault)
}
