package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/zatekoja/unitycure/backend/internal/adapters/database"
	"github.com/zatekoja/unitycure/backend/internal/application/services"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/observability"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
	"github.com/zatekoja/unitycure/backend/pkg/config"
)

// backup snapshots the live store (or the legacy file with -legacy) into
// BACKUP_DIR, or replays a snapshot with -restore.
func main() {
	var fromLegacy bool
	var restoreFile string
	flag.BoolVar(&fromLegacy, "legacy", false, "back up the legacy database file instead of the live store")
	flag.StringVar(&restoreFile, "restore", "", "restore the given backup file into the live store")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := observability.InitLoggerTo(os.Stderr, cfg.OTEL.ServiceName+"-backup", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backups := services.NewBackupService(cfg.Storage.BackupDir, logger)

	if fromLegacy {
		report, err := backups.BackupLegacy(ctx, cfg.Storage.LegacyPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("Legacy backup failed")
		}
		printReport(logger, report)
		return
	}

	liveStore, err := store.NewInitializer(cfg, logger).Initialize(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("No data store available")
	}
	defer liveStore.Close()

	if restoreFile != "" {
		if err := restore(ctx, liveStore, restoreFile, logger); err != nil {
			logger.Error().Err(err).Msg("Restore failed")
			liveStore.Close()
			os.Exit(2)
		}
		return
	}

	report, err := backups.Backup(ctx, database.NewLegacyExporter(liveStore))
	if err != nil {
		logger.Error().Err(err).Msg("Backup failed")
		liveStore.Close()
		os.Exit(2)
	}
	printReport(logger, report)
}

func restore(ctx context.Context, s store.Store, path string, logger zerolog.Logger) error {
	repos := services.Repositories{
		Users:           database.NewUserAdapter(s),
		Hospitals:       database.NewHospitalAdapter(s),
		Appointments:    database.NewAppointmentAdapter(s),
		SosReports:      database.NewSosReportAdapter(s),
		Feedback:        database.NewFeedbackAdapter(s),
		Providers:       database.NewProviderAdapter(s),
		ContactMessages: database.NewContactMessageAdapter(s),
		ChatbotMessages: database.NewChatbotMessageAdapter(s),
	}
	report, err := services.NewRestoreService(repos, nil, logger).Restore(ctx, path)
	if err != nil {
		return err
	}
	printReport(logger, report)
	if !report.OK() {
		return fmt.Errorf("one or more tables failed to restore")
	}
	return nil
}

func printReport(logger zerolog.Logger, report any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logger.Error().Err(err).Msg("Failed to write report")
	}
}
