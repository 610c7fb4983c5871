package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/marcosovalle/shopfront-backend/api/routes"
	"github.com/marcosovalle/shopfront-backend/internal/authctx"
	"github.com/marcosovalle/shopfront-backend/internal/catalog"
	"github.com/marcosovalle/shopfront-backend/internal/collections"
	"github.com/marcosovalle/shopfront-backend/internal/prefs"
	"github.com/marcosovalle/shopfront-backend/internal/upstream"
	"github.com/marcosovalle/shopfront-backend/pkg/config"
	"github.com/marcosovalle/shopfront-backend/pkg/kv"
	"github.com/marcosovalle/shopfront-backend/pkg/logger"
	"github.com/marcosovalle/shopfront-backend/pkg/metrics"
	"github.com/marcosovalle/shopfront-backend/pkg/session"
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

	store, err := kv.NewRedis(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(store, cfg.Session.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	collectionMetrics := metrics.NewCollectionMetrics(registry)

	collectionStore, err := collections.NewStore(store, logg, collectionMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create collection store", err)
		os.Exit(1)
	}

	upstreamClient, err := upstream.New(cfg.Upstream)
	if err != nil {
		logg.Error(context.Background(), "failed to create upstream client", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(upstreamClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	authService, err := authctx.NewService(store, cfg.JWT, upstreamClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	prefsService, err := prefs.NewService(store, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create preferences service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:         cfg,
		Logger:         logg,
		Store:          store,
		Counter:        store,
		SessionManager: sessionManager,
		HTTPMetrics:    httpMetrics,
		Registry:       registry,
		Cart:           collections.NewCart(collectionStore),
		Wishlist:       collections.NewWishlist(collectionStore),
		Recent:         collections.NewRecentlyViewed(collectionStore, cfg.Collections.RecentlyViewedCap),
		Catalog:        catalogService,
		Auth:           authService,
		Prefs:          prefsService,
		Upstream:       upstreamClient,
	})

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
		Addr:    addr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
