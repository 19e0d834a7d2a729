package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zatekoja/unitycure/backend/internal/adapters/database"
	"github.com/zatekoja/unitycure/backend/internal/application/services"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/observability"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
	"github.com/zatekoja/unitycure/backend/pkg/config"
)

// migrate copies the legacy SQLite database into the live store, seeds empty
// collections and prints the report as JSON.
func main() {
	var legacyPath string
	var skipSeed, once bool
	flag.StringVar(&legacyPath, "legacy", "", "legacy database file (defaults to LEGACY_DB_PATH)")
	flag.BoolVar(&skipSeed, "no-seed", false, "do not seed empty collections after migrating")
	flag.BoolVar(&once, "once", false, "skip the migration when this legacy file was already migrated")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if legacyPath == "" {
		legacyPath = cfg.Storage.LegacyPath
	}

	logger := observability.InitLoggerTo(os.Stderr, cfg.OTEL.ServiceName+"-migrate", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	liveStore, err := store.NewInitializer(cfg, logger).Initialize(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("No data store available")
	}
	defer liveStore.Close()

	repos := services.Repositories{
		Users:           database.NewUserAdapter(liveStore),
		Hospitals:       database.NewHospitalAdapter(liveStore),
		Appointments:    database.NewAppointmentAdapter(liveStore),
		SosReports:      database.NewSosReportAdapter(liveStore),
		Feedback:        database.NewFeedbackAdapter(liveStore),
		Providers:       database.NewProviderAdapter(liveStore),
		ContactMessages: database.NewContactMessageAdapter(liveStore),
		ChatbotMessages: database.NewChatbotMessageAdapter(liveStore),
	}

	output := struct {
		Store     store.Kind                `json:"store"`
		Migration *services.MigrationReport `json:"migration"`
		Seed      *services.SeedReport      `json:"seed,omitempty"`
	}{Store: liveStore.Kind()}

	migrationService := services.NewMigrationService(repos, nil, logger)
	migrationService.SetImportLog(database.NewLegacyImportAdapter(liveStore))
	if once {
		output.Migration, err = migrationService.MigrateOnce(ctx, legacyPath)
	} else {
		output.Migration, err = migrationService.Migrate(ctx, legacyPath)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("Migration failed")
	}

	if !skipSeed {
		output.Seed, err = services.NewSeedService(repos.Users, repos.Hospitals, logger).Seed(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Seeding failed")
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		logger.Fatal().Err(err).Msg("Failed to write report")
	}
	if !output.Migration.OK() {
		os.Exit(2)
	}
}
