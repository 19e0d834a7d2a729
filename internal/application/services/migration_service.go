package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/unitycure/backend/internal/adapters/legacy"
	"github.com/zatekoja/unitycure/backend/internal/domain/providers"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// MigrationReport describes one run of the legacy migration.
type MigrationReport struct {
	LegacyPath  string        `json:"legacyPath"`
	LegacyFound bool          `json:"legacyFound"`
	Tables      []TableResult `json:"tables"`
	Duration    time.Duration `json:"duration"`

	// AlreadyImported is set when MigrateOnce found a finished migration of
	// the same file and did nothing.
	AlreadyImported bool `json:"alreadyImported,omitempty"`
}

// OK reports whether no table failed. Skipped and partial tables count as OK.
func (r *MigrationReport) OK() bool {
	for _, t := range r.Tables {
		if t.Status == TableFailed {
			return false
		}
	}
	return true
}

// Table returns the result for one table.
func (r *MigrationReport) Table(name string) (TableResult, bool) {
	for _, t := range r.Tables {
		if t.Table == name {
			return t, true
		}
	}
	return TableResult{}, false
}

// MigrationService copies the legacy SQLite database into the live store.
type MigrationService struct {
	importer *rowImporter
	metrics  *observability.Metrics
	eventBus providers.EventBus
	imports  repositories.LegacyImportRepository
	logger   zerolog.Logger
}

// NewMigrationService creates a new migration service. metrics may be nil.
func NewMigrationService(repos Repositories, metrics *observability.Metrics, logger zerolog.Logger) *MigrationService {
	return &MigrationService{
		importer: newRowImporter(repos),
		metrics:  metrics,
		logger:   logger.With().Str("component", "migration").Logger(),
	}
}

// SetEventBus announces completed migrations on bus.
func (s *MigrationService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

// SetImportLog records every migration that finishes without a failed table
// in imports, which MigrateOnce consults.
func (s *MigrationService) SetImportLog(imports repositories.LegacyImportRepository) {
	s.imports = imports
}

// MigrateOnce runs Migrate unless the import log already holds a finished
// migration of the same file. Without an import log it always migrates.
func (s *MigrationService) MigrateOnce(ctx context.Context, legacyPath string) (*MigrationReport, error) {
	if s.imports != nil {
		done, err := s.imports.IsImported(ctx, importKey(legacyPath))
		if err != nil {
			return nil, err
		}
		if done {
			s.logger.Info().Str("path", legacyPath).Msg("legacy database already migrated, skipping")
			return &MigrationReport{LegacyPath: legacyPath, AlreadyImported: true}, nil
		}
	}
	return s.Migrate(ctx, legacyPath)
}

// Migrate imports every table of the legacy file at legacyPath. A missing
// file yields an empty report. Tables run concurrently and each gets its own
// result; a failing table never discards the work done by the others.
func (s *MigrationService) Migrate(ctx context.Context, legacyPath string) (*MigrationReport, error) {
	ctx, span := observability.StartSpan(ctx, "MigrationService.Migrate")
	defer span.End()

	started := time.Now()
	report := &MigrationReport{LegacyPath: legacyPath}

	source, err := legacy.Open(ctx, legacyPath)
	if err != nil {
		if errors.Is(err, legacy.ErrNotFound) {
			s.logger.Info().Str("path", legacyPath).Msg("no legacy database found, skipping migration")
			return report, nil
		}
		observability.RecordError(span, err)
		return nil, err
	}
	defer source.Close()
	report.LegacyFound = true

	tables := source.Tables()
	report.Tables = make([]TableResult, len(tables))

	var wg sync.WaitGroup
	for i, table := range tables {
		wg.Add(1)
		go func(i int, table string) {
			defer wg.Done()
			report.Tables[i] = s.migrateTable(ctx, source, table)
		}(i, table)
	}
	wg.Wait()

	report.Duration = time.Since(started)
	span.SetAttributes(attribute.Bool("migration.ok", report.OK()))

	for _, result := range report.Tables {
		event := s.logger.Info()
		if result.Status == TableFailed {
			event = s.logger.Error()
		} else if result.Status != TableImported {
			event = s.logger.Warn()
		}
		event.Str("table", result.Table).
			Str("status", string(result.Status)).
			Int("rows", result.Rows).
			Int("migrated", result.Migrated).
			Int("failed", result.Failed).
			Str("reason", result.Reason).
			Msg("table migrated")
	}
	s.logger.Info().Dur("duration", report.Duration).Bool("ok", report.OK()).Msg("legacy migration finished")
	publishImport(ctx, s.eventBus, s.logger, "legacy", report.Tables)
	s.recordImport(ctx, report)
	return report, nil
}

// recordImport marks a migration without failed tables as done. A marker
// that cannot be written only means the next MigrateOnce runs again.
func (s *MigrationService) recordImport(ctx context.Context, report *MigrationReport) {
	if s.imports == nil || !report.LegacyFound || !report.OK() {
		return
	}
	written := 0
	for _, t := range report.Tables {
		written += t.Migrated
	}
	if err := s.imports.MarkImported(ctx, importKey(report.LegacyPath), written, time.Now().UTC()); err != nil {
		s.logger.Warn().Err(err).Str("path", report.LegacyPath).Msg("failed to record legacy migration")
	}
}

// importKey identifies a legacy file by its absolute path.
func importKey(legacyPath string) string {
	if abs, err := filepath.Abs(legacyPath); err == nil {
		return abs
	}
	return legacyPath
}

// migrateTable never panics: a panic while reading fails the table, and
// importTable recovers its own panics with the counts written so far.
func (s *MigrationService) migrateTable(ctx context.Context, source *legacy.Store, table string) (result TableResult) {
	defer func() {
		if r := recover(); r != nil {
			result = TableResult{Table: table, Status: TableFailed, Reason: fmt.Sprintf("panic: %v", r)}
		}
	}()

	rows, err := source.ReadTable(ctx, table)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeTableAbsent) {
			return TableResult{Table: table, Status: TableSkipped, Reason: "table not found in legacy database"}
		}
		return TableResult{Table: table, Status: TableFailed, Reason: err.Error()}
	}

	result = s.importer.importTable(ctx, table, rows)
	observability.RecordImportMetric(ctx, s.metrics, "legacy", table, result.Migrated, result.Failed)
	return result
}
