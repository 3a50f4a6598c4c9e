package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/soldhq/sales-ledger/internal/bot"
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
	logg := logger.New(logger.Options{ServiceName: "bot"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "bot",
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

	ingestService, err := ingest.NewService(ingest.ServiceParams{
		Ledger:  ledger.NewRepository(dbClient.DB()),
		Rates:   settingsService,
		Secret:  cfg.Webhook.Secret,
		Logger:  logg,
		Metrics: metrics.NewIngestMetrics(nil),
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

	b, err := bot.New(bot.Params{
		Discord:   cfg.Discord,
		Ingest:    ingestService,
		Summaries: summaryService,
		Rates:     settingsService,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create bot", err)
		os.Exit(1)
	}

	if err := b.Start(); err != nil {
		logg.Error(context.Background(), "failed to start bot", err)
		os.Exit(1)
	}
	ctx := logg.WithFields(context.Background(), map[string]any{"env": cfg.App.Env})
	logg.Info(ctx, "bot connected, waiting for commands")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logg.Info(ctx, "shutting down bot")
	if err := b.Stop(); err != nil {
		logg.Error(ctx, "error closing discord session", err)
	}
}
