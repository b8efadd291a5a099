// HTTP API - ручной запуск правил, список правил, баланс баллов
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/glkeru/loyalty/magic/internal/api"
	config "github.com/glkeru/loyalty/magic/internal/config"
	db "github.com/glkeru/loyalty/magic/internal/db"
	rabbit "github.com/glkeru/loyalty/magic/internal/external/rabbitmq"
	interf "github.com/glkeru/loyalty/magic/internal/interfaces"
	services "github.com/glkeru/loyalty/magic/internal/services"
	tracing "github.com/glkeru/loyalty/magic/observability/otel"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	config.LoadDotEnv()

	// log
	logger, err := config.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// config
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if cfg.HTTPPort == "" {
		panic("env MAGIC_HTTP_PORT is not set")
	}

	// tracing
	shutdown, err := tracing.InitTracer(context.Background(), "magic-rules", logger)
	if err != nil {
		panic(err)
	}
	defer shutdown()

	// database
	storage, err := db.NewMagicDB(logger)
	if err != nil {
		panic(err)
	}
	defer storage.Close()

	// cache
	var cache interf.CacheStorage
	redis, err := db.NewCacheService()
	if err != nil {
		logger.Error(err.Error())
	} else {
		cache = redis
		defer redis.Close()
	}

	// notifications
	notifier, err := rabbit.NewRabbitNotifier()
	if err != nil {
		panic(err)
	}
	defer notifier.Close()

	// services
	points := services.NewPointService(logger, storage, cache)
	actions := services.NewActionService(logger, storage, points, notifier)
	actions.Attempts = cfg.CouponAttempts
	serv := services.NewMagicService(logger, storage, storage, points, actions, services.Options{
		Scope:      cfg.RuleScope,
		RulesLimit: cfg.RulesLimit,
		Location:   cfg.PurchaseTZ,
	})

	// api handlers
	r := api.NewHandler(serv, storage, points, logger, cfg.RuleScope, cfg.RulesLimit)
	srv := &http.Server{
		Handler:      otelhttp.NewHandler(r, "magic-api"),
		Addr:         ":" + cfg.HTTPPort,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// shutdown
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	timeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = srv.Shutdown(timeout)
	if err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
