package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/musicstore/backend/api/routes"
	"github.com/musicstore/backend/internal/cart"
	"github.com/musicstore/backend/internal/catalog"
	"github.com/musicstore/backend/internal/orders"
	"github.com/musicstore/backend/pkg/config"
	"github.com/musicstore/backend/pkg/db"
	"github.com/musicstore/backend/pkg/logger"
	"github.com/musicstore/backend/pkg/metrics"
	"github.com/musicstore/backend/pkg/migrate"
	"github.com/musicstore/backend/pkg/redis"
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	requestMetrics := metrics.NewRequestMetrics(registry)

	catalogService := catalog.NewService(
		catalog.NewRepository(dbClient.DB()),
		redisClient,
		catalog.Options{
			GenreMenuLimit: cfg.Catalog.GenreMenuLimit,
			TopSellerLimit: cfg.Catalog.TopSellerLimit,
			AlbumDetailTTL: cfg.Catalog.AlbumDetailTTL,
		},
	)

	cartRepo := cart.NewRepository(dbClient.DB())
	cartStores, err := cart.NewStores(cartRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart stores", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(
		orders.NewRepository(dbClient.DB()),
		cartRepo,
		catalog.NewRepository(dbClient.DB()),
		dbClient,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
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
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			Sessions:       redisClient,
			RequestMetrics: requestMetrics,
			Registry:       registry,
			Catalog:        catalogService,
			CartStores:     cartStores,
			Orders:         ordersService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
