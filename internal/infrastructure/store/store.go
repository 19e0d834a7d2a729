// Package store exposes the single live data store behind one capability
// interface. The concrete store (PostgreSQL primary or embedded SQLite
// fallback) is chosen once by the Initializer; callers never branch on it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
)

// Kind identifies the physical store behind a Store.
type Kind string

const (
	KindPostgres Kind = "postgres"
	KindSQLite   Kind = "sqlite"
)

// Store is the capability every repository is written against.
type Store interface {
	// Kind reports the physical store; informational only.
	Kind() Kind

	// Query runs a statement that returns rows.
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)

	// QueryRow runs a statement that returns at most one row.
	QueryRow(ctx context.Context, query string, args ...any) *sql.Row

	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)

	// Builder returns a goqu database bound to the store's SQL dialect.
	Builder() *goqu.Database

	// IsUniqueViolation reports a duplicate natural key.
	IsUniqueViolation(err error) bool

	// IsMissingTable reports a query against a table that does not exist.
	IsMissingTable(err error) bool

	// EnsureSchema creates every table and index that does not exist yet.
	EnsureSchema(ctx context.Context) error

	Ping(ctx context.Context) error
	Close() error
}

// dialect maps storage-neutral column types to native DDL.
type dialect interface {
	columnType(t schema.ColumnType) string
	defaultValue(t schema.ColumnType) string
}

// sqlStore carries what both implementations share.
type sqlStore struct {
	db      *sql.DB
	builder *goqu.Database
	dialect dialect
}

func newSQLStore(db *sql.DB, goquDialect string, d dialect) sqlStore {
	return sqlStore{db: db, builder: goqu.New(goquDialect, db), dialect: d}
}

func (s *sqlStore) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query, args...)
}

func (s *sqlStore) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, query, args...)
}

func (s *sqlStore) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, query, args...)
}

func (s *sqlStore) Builder() *goqu.Database {
	return s.builder
}

func (s *sqlStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlStore) EnsureSchema(ctx context.Context) error {
	tables := append(schema.Tables(), schema.Bookkeeping()...)
	for _, stmt := range RenderSchema(s.dialect, tables) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// RenderSchema renders idempotent DDL for tables.
func RenderSchema(d dialect, tables []schema.Table) []string {
	stmts := make([]string, 0, len(tables)*3)
	for _, table := range tables {
		defs := make([]string, 0, len(table.Columns))
		for _, col := range table.Columns {
			defs = append(defs, renderColumn(d, col))
		}
		stmts = append(stmts, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
			table.Name, strings.Join(defs, ",\n\t")))
		for _, idx := range table.Indexes {
			stmts = append(stmts, fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
				idx.Name, table.Name, strings.Join(idx.Columns, ", ")))
		}
	}
	return stmts
}

func renderColumn(d dialect, col schema.Column) string {
	var b strings.Builder
	b.WriteString(col.Name)
	b.WriteString(" ")
	b.WriteString(d.columnType(col.Type))
	switch {
	case col.PrimaryKey:
		b.WriteString(" PRIMARY KEY")
	case !col.Nullable:
		b.WriteString(" NOT NULL DEFAULT ")
		if len(col.Enum) > 0 {
			b.WriteString(quote(col.Enum[0]))
		} else {
			b.WriteString(d.defaultValue(col.Type))
		}
	}
	if col.Unique {
		b.WriteString(" UNIQUE")
	}
	if len(col.Enum) > 0 {
		quoted := make([]string, len(col.Enum))
		for i, v := range col.Enum {
			quoted[i] = quote(v)
		}
		fmt.Fprintf(&b, " CHECK (%s IN (%s))", col.Name, strings.Join(quoted, ", "))
	}
	if col.Check != "" {
		fmt.Fprintf(&b, " CHECK (%s)", col.Check)
	}
	return b.String()
}

func quote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}
