package middleware

import (
	"net/http"
	"strings"

	"openpims-golang/gateway/internal/config"
	httppkg "openpims-golang/gateway/internal/pkg/http"
)

// Auth gates the control API with the configured key. Panel pages and the
// health endpoint stay open; the proxy path never passes through here.
func Auth(next http.Handler) http.Handler {
	cfg := config.Get()
	if cfg.APIKey == "" {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get("x-api-key")
		if key == "" {
			auth := strings.TrimSpace(r.Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
				key = strings.TrimSpace(auth[7:])
			}
		}
		if key != cfg.APIKey {
			httppkg.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
