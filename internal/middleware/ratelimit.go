package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	myErr "complia-web/internal/types/errors"

	"go.uber.org/zap"
)

// Limiter - счётчик попыток в окне
type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
}

// FeedbackRateLimit ограничивает число отзывов с одного IP в окне.
// X-Forwarded-For учитывается только при trustForwarded.
// Ошибки хранилища запрос не блокируют.
func FeedbackRateLimit(
	l Limiter,
	limit int64,
	window time.Duration,
	trustForwarded bool,
	logger *zap.SugaredLogger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "feedback:" + ClientIP(r, trustForwarded)

			ok, n, err := l.Allow(r.Context(), key, limit, window)
			if err != nil {
				logger.Warnf("rate limiter unavailable, letting request through: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			if !ok {
				logger.Infow("feedback rate limited",
					"key", key,
					"count", n,
					"limit", limit,
				)
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
				myErr.SendErrorTo(w, myErr.ErrRateLimited, http.StatusTooManyRequests, logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP - RemoteAddr без порта. Первый адрес из X-Forwarded-For берётся
// только если запрос пришёл через доверенный прокси.
func ClientIP(r *http.Request, trustForwarded bool) string {
	if fwd := r.Header.Get("X-Forwarded-For"); trustForwarded && fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
