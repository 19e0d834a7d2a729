// Package database implements the domain repositories with goqu-built SQL
// over the live store, whichever dialect it speaks.
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

type sqlBuilder interface {
	ToSQL() (string, []interface{}, error)
}

type scanner interface {
	Scan(dest ...any) error
}

// base holds what every adapter needs: the store and its SQL builder.
type base struct {
	store store.Store
	db    *goqu.Database
	table string
}

func newBase(s store.Store, table string) base {
	return base{store: s, db: s.Builder(), table: table}
}

func (b base) exec(ctx context.Context, q sqlBuilder, what string) (sql.Result, error) {
	query, args, err := q.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build "+what+" query", err)
	}
	result, err := b.store.Exec(ctx, query, args...)
	if err != nil {
		if b.store.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError(what+": record already exists", err)
		}
		return nil, apperrors.NewInternalError("failed to "+what, err)
	}
	return result, nil
}

// execOne is exec for statements that must touch exactly one row.
func (b base) execOne(ctx context.Context, q sqlBuilder, what, id string) error {
	result, err := b.exec(ctx, q, what)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s with id %s not found", b.table, id))
	}
	return nil
}

// queryAll runs q and scans every row with scan. Rows are fully drained
// before returning so the single SQLite connection is free again.
func queryAll[T any](ctx context.Context, b base, q sqlBuilder, scan func(scanner) (*T, error)) ([]*T, error) {
	query, args, err := q.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build "+b.table+" query", err)
	}
	rows, err := b.store.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list "+b.table, err)
	}
	defer rows.Close()

	out := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan "+b.table, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate "+b.table, err)
	}
	return out, nil
}

func queryOne[T any](ctx context.Context, b base, q sqlBuilder, scan func(scanner) (*T, error), what string) (*T, error) {
	query, args, err := q.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build "+b.table+" query", err)
	}
	item, err := scan(b.store.QueryRow(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(what + " not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get "+what, err)
	}
	return item, nil
}

func (b base) count(ctx context.Context) (int64, error) {
	query, args, err := b.db.From(b.table).Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}
	var n int64
	if err := b.store.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, apperrors.NewInternalError("failed to count "+b.table, err)
	}
	return n, nil
}

func (b base) selectFrom(columns []any) *goqu.SelectDataset {
	return b.db.From(b.table).Select(columns...)
}

// paginate orders newest first (or oldest first) with id as tie-breaker.
func paginate(ds *goqu.SelectDataset, opts repositories.ListOptions) *goqu.SelectDataset {
	if opts.Oldest {
		ds = ds.Order(goqu.C("created_at").Asc(), goqu.C("id").Asc())
	} else {
		ds = ds.Order(goqu.C("created_at").Desc(), goqu.C("id").Asc())
	}
	if opts.Limit > 0 {
		ds = ds.Limit(uint(opts.Limit))
	}
	if opts.Offset > 0 {
		ds = ds.Offset(uint(opts.Offset))
	}
	return ds
}

// prepare assigns an id and timestamps to a record about to be inserted.
func prepare(id *string, created, updated *time.Time) {
	if *id == "" {
		*id = uuid.New().String()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() {
		*updated = *created
	}
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeList(raw string) ([]string, error) {
	items := []string{}
	if raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}
