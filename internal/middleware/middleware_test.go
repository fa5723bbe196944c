package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"complia-web/internal/contextutil"
	"complia-web/internal/ratelimit"
	myErr "complia-web/internal/types/errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeLimiter считает вызовы по ключам, как настоящий лимитер
type fakeLimiter struct {
	calls    map[string]int64
	lastKey  string
	returnEr error
}

func (f *fakeLimiter) Allow(_ context.Context, key string, limit int64, _ time.Duration) (bool, int64, error) {
	f.lastKey = key
	if f.returnEr != nil {
		return false, 0, f.returnEr
	}
	if f.calls == nil {
		f.calls = make(map[string]int64)
	}
	f.calls[key]++
	return f.calls[key] <= limit, f.calls[key], nil
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = contextutil.GetRequestIDFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
}

func TestRequestID_KeepsIncoming(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = contextutil.GetRequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "upstream-id", seen)
	assert.Equal(t, "upstream-id", rr.Header().Get(RequestIDHeader))
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/notice/{id}", okHandler).Methods(http.MethodGet)
	r.HandleFunc("/boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}).Methods(http.MethodGet)

	for _, path := range []string{"/notice/ASMT-10", "/notice/GST-DRC-01", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.InDelta(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/notice/{id}", "200")), 0.001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.errorsTotal.WithLabelValues("GET", "/boom", "502")), 0.001)
	assert.InDelta(t, 0.0, testutil.ToFloat64(m.inFlightRequests), 0.001)
}

func TestMetrics_CountsUnmatched(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/notice/{id}", okHandler).Methods(http.MethodGet)
	m.CountUnmatched(r)

	notFound := httptest.NewRecorder()
	r.ServeHTTP(notFound, httptest.NewRequest(http.MethodGet, "/wp-login.php", nil))
	assert.Equal(t, http.StatusNotFound, notFound.Code)

	notAllowed := httptest.NewRecorder()
	r.ServeHTTP(notAllowed, httptest.NewRequest(http.MethodDelete, "/notice/ASMT-10", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, notAllowed.Code)

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "unmatched", "404")), 0.001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.errorsTotal.WithLabelValues("DELETE", "unmatched", "405")), 0.001)
}

func TestAccessLog_PassesThrough(t *testing.T) {
	h := AccessLog(zaptest.NewLogger(t).Sugar())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestFeedbackRateLimit(t *testing.T) {
	l := &fakeLimiter{}
	h := FeedbackRateLimit(l, 1, time.Minute, false, zaptest.NewLogger(t).Sugar())(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodPost, "/notice/ASMT-10/feedback", nil)
	req.RemoteAddr = "192.0.2.1:5555"

	first := httptest.NewRecorder()
	h.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "feedback:192.0.2.1", l.lastKey)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))

	var body myErr.ErrorServer
	require.NoError(t, json.NewDecoder(second.Body).Decode(&body))
	assert.Equal(t, myErr.ErrRateLimited.Error(), body.Message)
}

func TestFeedbackRateLimit_FailsOpen(t *testing.T) {
	l := &fakeLimiter{returnEr: errors.New("redis: connection refused")}
	h := FeedbackRateLimit(l, 1, time.Minute, false, zaptest.NewLogger(t).Sugar())(http.HandlerFunc(okHandler))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/notice/ASMT-10/feedback", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestFeedbackRateLimit_IgnoresRotatingForwardedFor(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := zaptest.NewLogger(t).Sugar()
	limiter := ratelimit.NewRedisLimiter(rdb, logger)
	h := FeedbackRateLimit(limiter, 2, time.Minute, false, logger)(http.HandlerFunc(okHandler))

	accepted := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/notice/ASMT-10/feedback", nil)
		req.RemoteAddr = "192.0.2.1:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code == http.StatusOK {
			accepted++
		} else {
			assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		}
	}

	assert.Equal(t, 2, accepted)
}

func TestFeedbackRateLimit_TrustedProxyKeysOnForwardedFor(t *testing.T) {
	l := &fakeLimiter{}
	h := FeedbackRateLimit(l, 1, time.Minute, true, zaptest.NewLogger(t).Sugar())(http.HandlerFunc(okHandler))

	for _, client := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodPost, "/notice/ASMT-10/feedback", nil)
		req.RemoteAddr = "10.0.0.5:443"
		req.Header.Set("X-Forwarded-For", client+", 10.0.0.5")

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "feedback:"+client, l.lastKey)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:1234"
	assert.Equal(t, "198.51.100.7", ClientIP(req, false))
	assert.Equal(t, "198.51.100.7", ClientIP(req, true))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "198.51.100.7", ClientIP(req, false))
	assert.Equal(t, "203.0.113.9", ClientIP(req, true))

	req.Header.Del("X-Forwarded-For")
	req.RemoteAddr = "no-port"
	assert.Equal(t, "no-port", ClientIP(req, false))
}
