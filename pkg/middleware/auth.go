package middleware

import (
	"crypto/subtle"
	"net/http"

	"cinema-manager/pkg/utils"

	"go.uber.org/zap"
)

// Admin gates management routes behind the configured API key.
// The key is sent in the X-API-Key header.
func Admin(apiKey string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				logger.Error("Admin check: no API key configured",
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access not configured")
				return
			}

			provided := r.Header.Get("X-API-Key")
			if provided == "" {
				utils.ResponseUnauthorized(w, "Missing API key")
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				logger.Warn("Admin check: invalid API key",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
