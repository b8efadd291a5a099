// Job - запуск правил по оплаченным заказам
// Опрос Kafka -> бустеры -> правила -> запись о срабатывании
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	config "github.com/glkeru/loyalty/magic/internal/config"
	db "github.com/glkeru/loyalty/magic/internal/db"
	kafka "github.com/glkeru/loyalty/magic/internal/external/kafka"
	rabbit "github.com/glkeru/loyalty/magic/internal/external/rabbitmq"
	interf "github.com/glkeru/loyalty/magic/internal/interfaces"
	model "github.com/glkeru/loyalty/magic/internal/models"
	services "github.com/glkeru/loyalty/magic/internal/services"
	tracing "github.com/glkeru/loyalty/magic/observability/otel"
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

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	shutdown, err := tracing.InitTracer(context.Background(), "magic-orders", logger)
	if err != nil {
		panic(err)
	}
	defer shutdown()

	// kafka
	reader, err := kafka.GetNewReader("orders_paid")
	if err != nil {
		panic(err)
	}
	defer reader.CloseReader()

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

	// start
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-interrupt
		cancel()
	}()

	// остановка прерывает только чтение, начатые заказы дорабатываются
	work := context.WithoutCancel(ctx)
	wg := &sync.WaitGroup{}
	semaphore := make(chan struct{}, cfg.OrdersCount)

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		default:
			event, err := reader.GetNewMessage(ctx)
			if err != nil {
				if errors.Is(err, model.ErrInvalidEvent) {
					logger.Error("skip message", zap.Error(err))
					continue
				}
				if ctx.Err() == nil {
					logger.Error(err.Error())
				}
				break loop
			}

			semaphore <- struct{}{}
			wg.Add(1)
			go func(event kafka.OrderEvent) {
				defer wg.Done()
				defer func() { <-semaphore }()
				results, err := serv.EvaluateRulesForOrder(work, event.OrganizationID, event.OrderID, event.Event)
				if err != nil {
					logger.Error("evaluate order",
						zap.String("organization", event.OrganizationID),
						zap.String("order", event.OrderID),
						zap.Error(err))
					return
				}
				logger.Info("order evaluated",
					zap.String("order", event.OrderID),
					zap.Any("results", results))
			}(event)
		}
	}
	wg.Wait()
}
