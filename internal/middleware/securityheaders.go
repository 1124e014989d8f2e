package middleware

import (
	"net/http"

	"github.com/frostlinehq/frostline/internal/ctxkeys"
)

// SecurityHeaders sets baseline security headers on every response.
// The backend serves JSON and a handful of redirects, so the CSP can
// stay locked down.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		cfg := ctxkeys.Config(r.Context())
		if cfg != nil && cfg.IsProduction() {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
