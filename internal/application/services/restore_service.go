package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/zatekoja/unitycure/backend/internal/adapters/legacy"
	"github.com/zatekoja/unitycure/backend/internal/domain/providers"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// RestoreReport describes one restore run.
type RestoreReport struct {
	Path    string        `json:"path"`
	Tables  []TableResult `json:"tables"`
	Ignored []string      `json:"ignored,omitempty"`
}

// OK reports whether no table failed.
func (r *RestoreReport) OK() bool {
	for _, t := range r.Tables {
		if t.Status == TableFailed {
			return false
		}
	}
	return true
}

// RestoreService replays a snapshot file into the live store.
type RestoreService struct {
	importer *rowImporter
	metrics  *observability.Metrics
	eventBus providers.EventBus
	logger   zerolog.Logger
}

// NewRestoreService creates a new restore service. metrics may be nil.
func NewRestoreService(repos Repositories, metrics *observability.Metrics, logger zerolog.Logger) *RestoreService {
	return &RestoreService{
		importer: newRowImporter(repos),
		metrics:  metrics,
		logger:   logger.With().Str("component", "restore").Logger(),
	}
}

// SetEventBus announces completed restores on bus.
func (s *RestoreService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

// Restore reads the snapshot at path and imports every known table it
// contains, in migration order. The whole file is parsed and checked before
// anything is written: a missing file is NOT_FOUND and a malformed one is
// CORRUPT. Unknown keys are reported as ignored.
func (s *RestoreService) Restore(ctx context.Context, path string) (*RestoreReport, error) {
	ctx, span := observability.StartSpan(ctx, "RestoreService.Restore")
	defer span.End()

	sections, ignored, err := readSnapshot(path)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	report := &RestoreReport{Path: path, Ignored: ignored}
	for _, table := range schema.TableNames {
		rows, ok := sections[table]
		if !ok {
			continue
		}
		result := s.importer.importTable(ctx, table, rows)
		observability.RecordImportMetric(ctx, s.metrics, "backup", table, result.Migrated, result.Failed)
		report.Tables = append(report.Tables, result)

		s.logger.Info().
			Str("table", table).
			Str("status", string(result.Status)).
			Int("rows", result.Rows).
			Int("restored", result.Migrated).
			Int("failed", result.Failed).
			Str("reason", result.Reason).
			Msg("table restored")
	}
	if len(ignored) > 0 {
		s.logger.Warn().Strs("keys", ignored).Msg("ignored unknown backup keys")
	}
	publishImport(ctx, s.eventBus, s.logger, "backup", report.Tables)
	return report, nil
}

// readSnapshot parses a backup file into rows per known table. Numbers are
// kept as json.Number so integer columns survive unchanged. A null section is
// treated as absent.
func readSnapshot(path string) (map[string][]legacy.Row, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, apperrors.NewNotFoundError("backup file not found: " + path)
		}
		return nil, nil, apperrors.NewInternalError("read backup file", err)
	}

	var raw map[string]json.RawMessage
	if err := decodeNumbers(data, &raw); err != nil {
		return nil, nil, apperrors.NewCorruptError("backup file is not a JSON object", err)
	}
	if raw == nil {
		return nil, nil, apperrors.NewCorruptError("backup file is not a JSON object", nil)
	}

	sections := make(map[string][]legacy.Row)
	var ignored []string
	for key, value := range raw {
		if !schema.IsKnown(key) {
			ignored = append(ignored, key)
			continue
		}
		var rows []legacy.Row
		if err := decodeNumbers(value, &rows); err != nil {
			return nil, nil, apperrors.NewCorruptError(fmt.Sprintf("section %q is not an array of rows", key), err)
		}
		if rows == nil {
			continue
		}
		for i, row := range rows {
			if row == nil {
				return nil, nil, apperrors.NewCorruptError(fmt.Sprintf("section %q row %d is not an object", key, i), nil)
			}
		}
		sections[key] = rows
	}
	sort.Strings(ignored)
	return sections, ignored, nil
}

func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON value")
	}
	return nil
}
