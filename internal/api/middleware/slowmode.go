package middleware

import (
	"net/http"
	"strconv"
	"time"
)

// slowModeDefault is the delay applied when the header carries no
// usable number
const slowModeDefault = 3 * time.Second

// SlowMode delays a response by the number of milliseconds in the
// X-Slow-Mode header. It exists so client developers can exercise
// loading states against a local server; the router only installs it
// outside production.
func SlowMode() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if header := r.Header.Get("X-Slow-Mode"); header != "" {
				delay := slowModeDefault
				if ms, err := strconv.Atoi(header); err == nil && ms > 0 {
					delay = time.Duration(ms) * time.Millisecond
				}
				select {
				case <-time.After(delay):
				case <-r.Context().Done():
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
