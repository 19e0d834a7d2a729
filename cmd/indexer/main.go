package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/zatekoja/unitycure/backend/internal/adapters/database"
	"github.com/zatekoja/unitycure/backend/internal/adapters/search"
	"github.com/zatekoja/unitycure/backend/internal/application/services"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/observability"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
	"github.com/zatekoja/unitycure/backend/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := observability.InitLogger(cfg.OTEL.ServiceName+"-indexer", cfg.Server.Env)

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			logger.Fatal().Err(err).Str("interval", intervalValue).Msg("Invalid interval")
		}
		if interval <= 0 {
			logger.Fatal().Msg("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, cfg, reset, logger); err != nil {
			logger.Error().Err(err).Msg("Reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		logger.Info().Dur("next_in", interval).Msg("Reindex complete")

		select {
		case <-ctx.Done():
			logger.Info().Msg("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, cfg *config.Config, reset bool, logger zerolog.Logger) error {
	liveStore, err := store.NewInitializer(cfg, logger).Initialize(ctx)
	if err != nil {
		return err
	}
	defer liveStore.Close()

	tsClient, err := typesense.NewClient(ctx, &cfg.Typesense, logger)
	if err != nil {
		return err
	}
	index := search.NewTypesenseAdapter(tsClient)

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		logger.Info().Msg("Deleting providers collection before reindex")
		if err := index.DropSchema(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to delete collection")
		}
	}

	count, err := services.NewProviderService(database.NewProviderAdapter(liveStore), index, logger).Reindex(ctx)
	if err != nil {
		return err
	}
	logger.Info().Int("providers", count).Msg("Indexing complete")
	return nil
}
