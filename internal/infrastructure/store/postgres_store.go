package store

import (
	"context"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/rs/zerolog"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/unitycure/backend/pkg/config"
)

// PostgresStore is the primary store.
type PostgresStore struct {
	sqlStore
	client *postgres.Client
}

var _ Store = (*PostgresStore)(nil)

// OpenPostgres connects to the configured PostgreSQL server.
func OpenPostgres(ctx context.Context, cfg *config.DatabaseConfig, logger zerolog.Logger) (*PostgresStore, error) {
	client, err := postgres.NewClient(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewPostgresStore(client), nil
}

// NewPostgresStore wraps an already connected client.
func NewPostgresStore(client *postgres.Client) *PostgresStore {
	return &PostgresStore{
		sqlStore: newSQLStore(client.DB(), "postgres", postgresDialect{}),
		client:   client,
	}
}

func (s *PostgresStore) Kind() Kind { return KindPostgres }

func (s *PostgresStore) IsUniqueViolation(err error) bool { return postgres.IsUniqueViolation(err) }

func (s *PostgresStore) IsMissingTable(err error) bool { return postgres.IsUndefinedTable(err) }

func (s *PostgresStore) Close() error { return s.client.Close() }

type postgresDialect struct{}

func (postgresDialect) columnType(t schema.ColumnType) string {
	switch t {
	case schema.Integer:
		return "BIGINT"
	case schema.Real:
		return "DOUBLE PRECISION"
	case schema.Boolean:
		return "BOOLEAN"
	case schema.StringList:
		return "JSONB"
	default:
		return "TEXT"
	}
}

func (postgresDialect) defaultValue(t schema.ColumnType) string {
	switch t {
	case schema.Integer, schema.Real:
		return "0"
	case schema.Boolean:
		return "FALSE"
	case schema.StringList:
		return "'[]'::jsonb"
	default:
		return "''"
	}
}
