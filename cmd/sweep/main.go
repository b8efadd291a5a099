// Job - sweep по клиентам без покупок MAGIC_SWEEP_DAYS дней
package main

import (
	"context"

	config "github.com/glkeru/loyalty/magic/internal/config"
	db "github.com/glkeru/loyalty/magic/internal/db"
	rabbit "github.com/glkeru/loyalty/magic/internal/external/rabbitmq"
	interf "github.com/glkeru/loyalty/magic/internal/interfaces"
	services "github.com/glkeru/loyalty/magic/internal/services"
	tracing "github.com/glkeru/loyalty/magic/observability/otel"
)

func main() {
	config.LoadDotEnv()

	// log
	logger, err := config.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	shutdown, err := tracing.InitTracer(context.Background(), "magic-sweep", logger)
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

	notifier, err := rabbit.NewRabbitNotifier()
	if err != nil {
		panic(err)
	}
	defer notifier.Close()

	points := services.NewPointService(logger, storage, cache)
	actions := services.NewActionService(logger, storage, points, notifier)
	actions.Attempts = cfg.CouponAttempts
	serv := services.NewMagicService(logger, storage, storage, points, actions, services.Options{
		Scope:      cfg.RuleScope,
		RulesLimit: cfg.RulesLimit,
		Location:   cfg.PurchaseTZ,
	})

	err = serv.Sweep(context.Background(), cfg.SweepDays, cfg.SweepLimit, cfg.SweepCount)
	if err != nil {
		logger.Error(err.Error())
		return
	}
	logger.Info("Job sweep is finished")
}
