package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/unitycure/backend/internal/adapters/legacy"
	"github.com/zatekoja/unitycure/backend/internal/domain/providers"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

const backupTimeFormat = "2006-01-02T15-04-05-000Z"

// BackupReport describes a written snapshot.
type BackupReport struct {
	Path            string         `json:"path,omitempty"`
	NothingToBackup bool           `json:"nothingToBackup"`
	Tables          map[string]int `json:"tables"`
	Absent          []string       `json:"absent,omitempty"`
}

// BackupService writes JSON snapshots of table rows in the legacy row shape.
type BackupService struct {
	dir    string
	now    func() time.Time
	logger zerolog.Logger
}

// NewBackupService creates a backup service writing into dir.
func NewBackupService(dir string, logger zerolog.Logger) *BackupService {
	return &BackupService{
		dir:    dir,
		now:    time.Now,
		logger: logger.With().Str("component", "backup").Logger(),
	}
}

// BackupLegacy snapshots the legacy database file at path. A missing file is
// not an error; the report is marked NothingToBackup.
func (s *BackupService) BackupLegacy(ctx context.Context, path string) (*BackupReport, error) {
	source, err := legacy.Open(ctx, path)
	if err != nil {
		if errors.Is(err, legacy.ErrNotFound) {
			s.logger.Info().Str("path", path).Msg("no legacy database found to back up")
			return &BackupReport{NothingToBackup: true, Tables: map[string]int{}}, nil
		}
		return nil, err
	}
	defer source.Close()
	return s.Backup(ctx, source)
}

// Backup reads every table of source and writes them to a new snapshot file.
// A table the source does not have is left out of the file; a table with no
// rows is written as an empty array. The file is synced and renamed into
// place before its path is returned.
func (s *BackupService) Backup(ctx context.Context, source providers.RowSource) (*BackupReport, error) {
	ctx, span := observability.StartSpan(ctx, "BackupService.Backup")
	defer span.End()

	report := &BackupReport{Tables: map[string]int{}}
	snapshot := make(map[string][]map[string]any)

	for _, table := range source.Tables() {
		rows, err := source.ReadTable(ctx, table)
		if err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeTableAbsent) {
				s.logger.Warn().Str("table", table).Msg("table not found, skipping")
				report.Tables[table] = 0
				report.Absent = append(report.Absent, table)
				continue
			}
			observability.RecordError(span, err)
			return nil, fmt.Errorf("back up %s: %w", table, err)
		}
		if rows == nil {
			rows = []map[string]any{}
		}
		snapshot[table] = rows
		report.Tables[table] = len(rows)
		s.logger.Debug().Str("table", table).Int("rows", len(rows)).Msg("table backed up")
	}

	name := fmt.Sprintf("unitycure_backup_%s.json", s.now().UTC().Format(backupTimeFormat))
	path, err := writeFileAtomic(s.dir, name, snapshot)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	report.Path = path

	span.SetAttributes(attribute.String("backup.path", path))
	s.logger.Info().Str("path", path).Interface("tables", report.Tables).Msg("backup created")
	return report, nil
}

// writeFileAtomic encodes v as indented JSON into dir/name through a synced
// temp file and a rename.
func writeFileAtomic(dir, name string, v any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		return "", fmt.Errorf("encode backup: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("sync backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close backup: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename backup: %w", err)
	}
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		d.Close()
	}
	return path, nil
}
