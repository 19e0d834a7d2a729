package store

import (
	"context"

	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/clients/sqlite"
)

// SQLiteStore is the embedded fallback store.
type SQLiteStore struct {
	sqlStore
	client *sqlite.Client
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the embedded store at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	client, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{
		sqlStore: newSQLStore(client.DB(), "sqlite3", sqliteDialect{}),
		client:   client,
	}, nil
}

func (s *SQLiteStore) Kind() Kind { return KindSQLite }

func (s *SQLiteStore) IsUniqueViolation(err error) bool { return sqlite.IsUniqueViolation(err) }

func (s *SQLiteStore) IsMissingTable(err error) bool { return sqlite.IsMissingTable(err) }

func (s *SQLiteStore) Close() error { return s.client.Close() }

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.client.Path() }

type sqliteDialect struct{}

func (sqliteDialect) columnType(t schema.ColumnType) string {
	switch t {
	case schema.Integer, schema.Boolean:
		return "INTEGER"
	case schema.Real:
		return "REAL"
	default:
		return "TEXT"
	}
}

func (sqliteDialect) defaultValue(t schema.ColumnType) string {
	switch t {
	case schema.Integer, schema.Real, schema.Boolean:
		return "0"
	case schema.StringList:
		return "'[]'"
	default:
		return "''"
	}
}
