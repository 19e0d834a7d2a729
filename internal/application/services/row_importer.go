package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/zatekoja/unitycure/backend/internal/adapters/legacy"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/providers"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// TableStatus is the outcome of importing one table.
type TableStatus string

const (
	TableImported TableStatus = "imported"
	TablePartial  TableStatus = "partial"
	TableSkipped  TableStatus = "skipped"
	TableFailed   TableStatus = "failed"
)

// TableResult reports what happened to one table during migration or restore.
type TableResult struct {
	Table    string      `json:"table"`
	Status   TableStatus `json:"status"`
	Rows     int         `json:"rows"`
	Migrated int         `json:"migrated"`
	Failed   int         `json:"failed"`
	Reason   string      `json:"reason,omitempty"`
}

// Repositories bundles the live store repositories that rows are imported into.
type Repositories struct {
	Users           repositories.UserRepository
	Hospitals       repositories.HospitalRepository
	Appointments    repositories.AppointmentRepository
	SosReports      repositories.SosReportRepository
	Feedback        repositories.FeedbackRepository
	Providers       repositories.ProviderRepository
	ContactMessages repositories.ContactMessageRepository
	ChatbotMessages repositories.ChatbotMessageRepository
}

type rowWriter func(ctx context.Context, row legacy.Row) error

// rowImporter converts legacy-shaped rows into entities and writes them.
// Users are upserted by identifier and hospitals by name; every other table
// is append-only.
type rowImporter struct {
	writers map[string]rowWriter
}

func newRowImporter(repos Repositories) *rowImporter {
	return &rowImporter{writers: map[string]rowWriter{
		schema.Users:           write(legacy.ToUser, repos.Users.Upsert),
		schema.Hospitals:       write(legacy.ToHospital, repos.Hospitals.Upsert),
		schema.Appointments:    write(legacy.ToAppointment, repos.Appointments.Create),
		schema.SosReports:      write(legacy.ToSosReport, repos.SosReports.Create),
		schema.Feedback:        write(legacy.ToFeedback, repos.Feedback.Create),
		schema.Providers:       write(legacy.ToProvider, repos.Providers.Create),
		schema.ContactMessages: write(legacy.ToContactMessage, repos.ContactMessages.Create),
		schema.ChatbotMessages: write(legacy.ToChatbotMessage, repos.ChatbotMessages.Create),
	}}
}

func write[T any](transform func(legacy.Row) (*T, error), save func(context.Context, *T) error) rowWriter {
	return func(ctx context.Context, row legacy.Row) error {
		entity, err := transform(row)
		if err != nil {
			return err
		}
		return save(ctx, entity)
	}
}

// importTable writes rows one at a time. A row that cannot be transformed is
// counted as failed and skipped; a store error or a panic stops the table,
// leaving the rows already written in place and counted.
func (r *rowImporter) importTable(ctx context.Context, table string, rows []legacy.Row) (result TableResult) {
	result = TableResult{Table: table, Status: TableImported, Rows: len(rows)}
	defer func() {
		if p := recover(); p != nil {
			result.Status = TableFailed
			result.Failed = len(rows) - result.Migrated
			result.Reason = fmt.Sprintf("panic: %v", p)
		}
	}()

	writeRow, ok := r.writers[table]
	if !ok {
		result.Status = TableFailed
		result.Reason = "unknown table"
		return result
	}

	var firstRowErr error
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			result.Status = TableFailed
			result.Reason = err.Error()
			return result
		}
		err := writeRow(ctx, row)
		switch {
		case err == nil:
			result.Migrated++
		case apperrors.IsType(err, apperrors.ErrorTypeRowTransform),
			apperrors.IsType(err, apperrors.ErrorTypeValidation):
			result.Failed++
			if firstRowErr == nil {
				firstRowErr = fmt.Errorf("row %d: %w", i, err)
			}
		default:
			result.Failed = len(rows) - result.Migrated
			result.Status = TableFailed
			result.Reason = fmt.Sprintf("row %d: %v", i, err)
			return result
		}
	}
	if result.Failed > 0 {
		result.Status = TablePartial
		result.Reason = firstRowErr.Error()
	}
	return result
}

// publishImport announces an import that wrote at least one row.
func publishImport(ctx context.Context, bus providers.EventBus, logger zerolog.Logger, source string, results []TableResult) {
	written := make(map[string]interface{})
	for _, r := range results {
		if r.Migrated > 0 {
			written[r.Table] = r.Migrated
		}
	}
	if len(written) == 0 {
		return
	}
	publishEvent(ctx, bus, logger, entities.NewDataEvent(entities.DataEventDataImported, "", map[string]interface{}{
		"source": source,
		"tables": written,
	}))
}
