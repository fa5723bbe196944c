package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"complia-web/internal/app"
	"complia-web/internal/handlers/pages"
	"complia-web/internal/kafka"
	"complia-web/internal/loader"
	"complia-web/internal/middleware"
	"complia-web/internal/notice"
	"complia-web/internal/ratelimit"
	"complia-web/internal/view"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const cfgPath = "config/config.yaml"

func main() {
	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	logger := zapLogger.Sugar()
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warnf("error to load .env: %v", err)
	}

	// парсим конфиг
	c, err := app.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	// init backend client
	noticeClient := notice.NewClient(c.APIURL, &http.Client{}, logger)
	pageLoader := loader.NewLoader(noticeClient, logger)

	views, err := view.NewRenderer()
	if err != nil {
		logger.Fatalf("error to parse templates: %v", err)
	}

	// init kafka
	var events kafka.EventProducer = kafka.NoopProducer{}
	if c.KafkaEnabled() {
		events = kafka.NewProducer(c.CfgKafka.Brokers, c.CfgKafka.Topic, logger)
	}
	defer func() {
		if err := events.Close(); err != nil {
			logger.Warnf("error to close kafka producer: %v", err)
		}
	}()

	pageHandlers := pages.NewPageHandler(logger, pageLoader, views, events)

	// init router
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger))
	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)
	r.Use(metrics.Middleware)
	metrics.CountUnmatched(r)

	var feedbackHandler http.Handler = http.HandlerFunc(pageHandlers.Feedback)

	// init redis
	if c.RedisEnabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     c.CfgRedis.Addr,
			Password: c.CfgRedis.Password,
			DB:       c.CfgRedis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warnf("error to close redis: %v", err)
			}
		}()

		limiter := ratelimit.NewRedisLimiter(redisClient, logger)
		feedbackHandler = middleware.FeedbackRateLimit(
			limiter,
			c.CfgFeedback.Limit,
			c.CfgFeedback.Window,
			c.CfgFeedback.TrustForwardedFor,
			logger,
		)(feedbackHandler)
	}

	r.HandleFunc("/", pageHandlers.Home).Methods("GET")
	r.HandleFunc("/notice/{id}", pageHandlers.Detail).Methods("GET")
	r.Handle("/notice/{id}/feedback", feedbackHandler).Methods("POST")

	r.HandleFunc("/healthz", pageHandlers.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", view.StaticHandler()))

	srv := &http.Server{
		Addr:         c.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infow("starting server",
			"type", "START",
			"addr", c.ServerPort,
			"api_url", c.APIURL,
			"redis", c.RedisEnabled(),
			"kafka", c.KafkaEnabled(),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("can't start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infow("shutting down server", "type", "STOP")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown failed: %v", err)
	}
}
