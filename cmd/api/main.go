package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/memohit/boostacart-backend/api/routes"
	"github.com/memohit/boostacart-backend/internal/admin"
	"github.com/memohit/boostacart-backend/internal/analytics"
	"github.com/memohit/boostacart-backend/internal/leads"
	"github.com/memohit/boostacart-backend/internal/plans"
	"github.com/memohit/boostacart-backend/internal/quota"
	"github.com/memohit/boostacart-backend/internal/savedleads"
	"github.com/memohit/boostacart-backend/internal/stores"
	"github.com/memohit/boostacart-backend/internal/widget"
	"github.com/memohit/boostacart-backend/pkg/config"
	"github.com/memohit/boostacart-backend/pkg/db"
	"github.com/memohit/boostacart-backend/pkg/logger"
	"github.com/memohit/boostacart-backend/pkg/metrics"
	"github.com/memohit/boostacart-backend/pkg/migrate"
	"github.com/memohit/boostacart-backend/pkg/redis"
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
	ingestMetrics := metrics.NewIngestMetrics(registry)

	quotaService, err := quota.NewService(quota.NewRepository(dbClient.DB()), logg)
	if err != nil {
		fatal(logg, "failed to create quota service", err)
	}

	storeRepo := stores.NewRepository(dbClient.DB())
	storeService, err := stores.NewService(storeRepo, logg)
	if err != nil {
		fatal(logg, "failed to create store service", err)
	}

	leadService, err := leads.NewService(leads.NewRepository(dbClient), quotaService, ingestMetrics, logg)
	if err != nil {
		fatal(logg, "failed to create lead service", err)
	}

	widgetService, err := widget.NewService(widget.NewRepository(dbClient.DB()), storeRepo, quotaService, logg)
	if err != nil {
		fatal(logg, "failed to create widget service", err)
	}

	savedLeadService, err := savedleads.NewService(savedleads.NewRepository(dbClient), logg)
	if err != nil {
		fatal(logg, "failed to create saved lead service", err)
	}

	analyticsService, err := analytics.NewService(analytics.NewRepository(dbClient.DB()), storeRepo, quotaService, logg)
	if err != nil {
		fatal(logg, "failed to create analytics service", err)
	}

	planService, err := plans.NewService(plans.NewRepository(dbClient.DB()), logg)
	if err != nil {
		fatal(logg, "failed to create plan service", err)
	}

	adminService, err := admin.NewService(admin.NewRepository(dbClient), redisClient, cfg.Admin, cfg.Throttle, logg)
	if err != nil {
		fatal(logg, "failed to create admin service", err)
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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			leadService,
			widgetService,
			planService,
			storeService,
			quotaService,
			savedLeadService,
			analyticsService,
			adminService,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			_ = server.Close()
		}
	}
}

func fatal(logg *logger.Logger, msg string, err error) {
	logg.Error(context.Background(), msg, err)
	os.Exit(1)
}
