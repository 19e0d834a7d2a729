package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// LegacyImportAdapter implements the LegacyImportRepository interface
type LegacyImportAdapter struct {
	base
}

// NewLegacyImportAdapter creates a new legacy import adapter
func NewLegacyImportAdapter(s store.Store) repositories.LegacyImportRepository {
	return &LegacyImportAdapter{base: newBase(s, schema.LegacyImports)}
}

// IsImported reports whether a row exists for source
func (a *LegacyImportAdapter) IsImported(ctx context.Context, source string) (bool, error) {
	query, args, err := a.db.From(a.table).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C("id").Eq(source)).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build legacy import query", err)
	}
	var n int64
	if err := a.store.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return false, apperrors.NewInternalError("failed to read legacy imports", err)
	}
	return n > 0, nil
}

// MarkImported inserts the marker for source, or refreshes an existing one
func (a *LegacyImportAdapter) MarkImported(ctx context.Context, source string, rows int, at time.Time) error {
	record := goqu.Record{
		"id":           source,
		"rows_written": rows,
		"completed_at": toMillis(at),
	}
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(record), "mark legacy import")
	if err == nil || !apperrors.IsConflict(err) {
		return err
	}
	update := a.db.Update(a.table).
		Set(goqu.Record{"rows_written": rows, "completed_at": toMillis(at)}).
		Where(goqu.C("id").Eq(source))
	return a.execOne(ctx, update, "update legacy import", source)
}
