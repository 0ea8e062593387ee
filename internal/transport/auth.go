package transport

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/ptdn/hoso-portal/internal/metrics"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

// AdminAuthMiddleware guards admin routes with the shared secret. The
// secret is accepted either as a bearer token or in X-Admin-Secret. An
// empty configured secret disables the admin surface entirely.
func AdminAuthMiddleware(secret string, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				http.Error(w, "admin access disabled", http.StatusForbidden)
				return
			}

			supplied := r.Header.Get("X-Admin-Secret")
			if supplied == "" {
				auth := r.Header.Get("Authorization")
				supplied = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			}

			if subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) != 1 {
				m.IncrementAdminAuthFailures()
				http.Error(w, "invalid admin secret", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
