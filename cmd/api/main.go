package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/soldhq/sales-ledger/api/routes"
	"github.com/soldhq/sales-ledger/internal/ingest"
	"github.com/soldhq/sales-ledger/internal/ledger"
	"github.com/soldhq/sales-ledger/internal/settings"
	"github.com/soldhq/sales-ledger/internal/summary"
	"github.com/soldhq/sales-ledger/pkg/config"
	"github.com/soldhq/sales-ledger/pkg/db"
	"github.com/soldhq/sales-ledger/pkg/logger"
	"github.com/soldhq/sales-ledger/pkg/metrics"
	"github.com/soldhq/sales-ledger/pkg/migrate"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
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

	settingsService, err := settings.NewService(settings.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}
	if err := settingsService.Seed(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to seed settings", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	ingestMetrics := metrics.NewIngestMetrics(registry)

	ingestService, err := ingest.NewService(ingest.ServiceParams{
		Ledger:  ledger.NewRepository(dbClient.DB()),
		Rates:   settingsService,
		Secret:  cfg.Webhook.Secret,
		Logger:  logg,
		Metrics: ingestMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create ingest service", err)
		os.Exit(1)
	}

	summaryService, err := summary.NewService(ledger.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create summary service", err)
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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, registry, ingestService, summaryService, settingsService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
