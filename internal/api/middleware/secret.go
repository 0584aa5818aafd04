package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const secretContextKey contextKey = "secret"

// SecretHeader is the header an authenticated device presents its
// capability token in
const SecretHeader = "X-Secret-String"

// Secret extracts the X-Secret-String header into the request context.
// Endpoints that require ownership proof read it via GetSecret; absence
// is not an error here, it just means the check downstream will fail.
func Secret() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret := r.Header.Get(SecretHeader); secret != "" {
				ctx := context.WithValue(r.Context(), secretContextKey, secret)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetSecret returns the secret presented with the request, if any
func GetSecret(ctx context.Context) string {
	secret, _ := ctx.Value(secretContextKey).(string)
	return secret
}
