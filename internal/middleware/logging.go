package middleware

import (
	"net/http"
	"time"

	"complia-web/internal/contextutil"

	"go.uber.org/zap"
)

func AccessLog(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			requestID, _ := contextutil.GetRequestIDFromContext(r.Context())
			logger.Infow("request",
				"type", "ACCESS",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rr.status,
				"duration", time.Since(start),
				"request_id", requestID,
			)
		})
	}
}
