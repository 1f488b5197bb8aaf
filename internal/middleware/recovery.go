package middleware

import (
	"net/http"

	"openpims-golang/gateway/internal/logger"
	httppkg "openpims-golang/gateway/internal/pkg/http"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error("panic: %v", v)
				httppkg.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
