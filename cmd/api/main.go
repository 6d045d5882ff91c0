package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/stanleymf/order-to-do-app-sub000/api/routes"
	"github.com/stanleymf/order-to-do-app-sub000/internal/florists"
	"github.com/stanleymf/order-to-do-app-sub000/internal/labels"
	"github.com/stanleymf/order-to-do-app-sub000/internal/orders"
	"github.com/stanleymf/order-to-do-app-sub000/internal/products"
	"github.com/stanleymf/order-to-do-app-sub000/internal/stores"
	syncsvc "github.com/stanleymf/order-to-do-app-sub000/internal/sync"
	shopifywebhook "github.com/stanleymf/order-to-do-app-sub000/internal/webhooks/shopify"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/config"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/db"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/logger"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/migrate"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	storesRepo := stores.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())
	productsRepo := products.NewRepository(dbClient.DB())
	labelsRepo := labels.NewRepository(dbClient.DB())
	floristsRepo := florists.NewRepository(dbClient.DB())

	ordersSvc, err := orders.NewService(orders.ServiceParams{
		Repo:   ordersRepo,
		Labels: labelsRepo,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	productsSvc, err := products.NewService(products.ServiceParams{
		DB:     dbClient,
		Repo:   productsRepo,
		Orders: ordersRepo,
		Labels: labelsRepo,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	labelsSvc, err := labels.NewService(labels.ServiceParams{
		DB:       dbClient,
		Repo:     labelsRepo,
		Orders:   ordersRepo,
		Products: productsRepo,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create labels service", err)
		os.Exit(1)
	}

	storesSvc, err := stores.NewService(stores.ServiceParams{
		Repo:              storesRepo,
		DefaultAPIVersion: cfg.Shopify.DefaultAPIVersion,
		Logger:            logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create stores service", err)
		os.Exit(1)
	}

	floristsSvc, err := florists.NewService(florists.ServiceParams{
		DB:     dbClient,
		Repo:   floristsRepo,
		Orders: ordersRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create florists service", err)
		os.Exit(1)
	}

	syncService, err := syncsvc.NewService(syncsvc.ServiceParams{
		Stores:         storesRepo,
		Orders:         ordersRepo,
		Products:       productsRepo,
		Labels:         labelsRepo,
		Clients:        syncsvc.NewClientFactory(cfg.Shopify.HTTPTimeout),
		Logger:         logg,
		Lookback:       cfg.Sync.Lookback,
		PageLimit:      cfg.Shopify.OrdersPageLimit,
		WebhookBaseURL: cfg.Shopify.WebhookBaseURL,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sync service", err)
		os.Exit(1)
	}

	guard, err := shopifywebhook.NewGuard(redisClient, 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook guard", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Orders:   ordersSvc,
			Products: productsSvc,
			Labels:   labelsSvc,
			Stores:   storesSvc,
			Florists: floristsSvc,
			Sync:     syncService,
			Guard:    guard,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
