package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stanleymf/order-to-do-app-sub000/internal/labels"
	"github.com/stanleymf/order-to-do-app-sub000/internal/orders"
	"github.com/stanleymf/order-to-do-app-sub000/internal/products"
	"github.com/stanleymf/order-to-do-app-sub000/internal/stores"
	syncsvc "github.com/stanleymf/order-to-do-app-sub000/internal/sync"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/config"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/db"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/logger"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/metrics"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/migrate"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "sync-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "sync-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	syncMetrics := metrics.NewSyncMetrics(prometheus.DefaultRegisterer)

	service, err := syncsvc.NewService(syncsvc.ServiceParams{
		Stores:         stores.NewRepository(dbClient.DB()),
		Orders:         orders.NewRepository(dbClient.DB()),
		Products:       products.NewRepository(dbClient.DB()),
		Labels:         labels.NewRepository(dbClient.DB()),
		Clients:        syncsvc.NewClientFactory(cfg.Shopify.HTTPTimeout),
		Logger:         logg,
		Metrics:        syncMetrics,
		Lookback:       cfg.Sync.Lookback,
		PageLimit:      cfg.Shopify.OrdersPageLimit,
		WebhookBaseURL: cfg.Shopify.WebhookBaseURL,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sync service", err)
		os.Exit(1)
	}

	lock, err := syncsvc.NewRedisLock(redisClient, redisClient.LockKey("store-sync"), cfg.Sync.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create sync lock", err)
		os.Exit(1)
	}

	worker, err := syncsvc.NewWorker(syncsvc.WorkerParams{
		Logger:   logg,
		Service:  service,
		Lock:     lock,
		Interval: cfg.Sync.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sync worker", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"interval": cfg.Sync.Interval.String(),
	})
	logg.Info(ctx, "starting sync worker")

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "sync worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "sync worker shutting down gracefully")
}
