package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	"github.com/zatekoja/unitycure/backend/pkg/config"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Database: config.DatabaseConfig{
			Host:           "127.0.0.1",
			Port:           1,
			User:           "postgres",
			Database:       "unitycure",
			SSLMode:        "disable",
			PoolSize:       2,
			ConnectTimeout: time.Second,
		},
		Storage: config.StorageConfig{
			FallbackPath: filepath.Join(t.TempDir(), "data", "fallback.db"),
		},
	}
}

func TestRenderSchemaSQLite(t *testing.T) {
	stmts := RenderSchema(sqliteDialect{}, schema.Tables())
	joined := strings.Join(stmts, "\n")

	assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS users")
	assert.Contains(t, joined, "identifier_key TEXT NOT NULL DEFAULT '' UNIQUE")
	assert.Contains(t, joined, "role TEXT NOT NULL DEFAULT 'Citizen'")
	assert.Contains(t, joined, "services TEXT NOT NULL DEFAULT '[]'")
	assert.Contains(t, joined, "patient_age INTEGER CHECK (patient_age IS NULL OR patient_age BETWEEN 0 AND 150)")
	assert.Contains(t, joined, "CREATE INDEX IF NOT EXISTS idx_feedback_service ON feedback (service_id, service_type)")
}

func TestRenderSchemaPostgres(t *testing.T) {
	joined := strings.Join(RenderSchema(postgresDialect{}, schema.Tables()), "\n")

	assert.Contains(t, joined, "services JSONB NOT NULL DEFAULT '[]'::jsonb")
	assert.Contains(t, joined, "emergency_services BOOLEAN NOT NULL DEFAULT FALSE")
	assert.Contains(t, joined, "rating_average DOUBLE PRECISION NOT NULL DEFAULT 0")
	assert.Contains(t, joined, "created_at BIGINT NOT NULL DEFAULT 0")
}

func TestSQLiteStoreEnsureSchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "live.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.EnsureSchema(ctx))
	require.NoError(t, s.EnsureSchema(ctx))

	for _, table := range schema.TableNames {
		var count int
		err := s.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
		require.NoError(t, err, table)
		assert.Zero(t, count)
	}
}

func TestSQLiteStoreClassifiesErrors(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "live.db"))
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.EnsureSchema(ctx))

	insert := func(id string) error {
		q, _, err := s.Builder().Insert(schema.Hospitals).Rows(goqu.Record{
			"id": id, "name": "General",
		}).ToSQL()
		require.NoError(t, err)
		_, err = s.Exec(ctx, q)
		return err
	}
	require.NoError(t, insert("h-1"))
	err = insert("h-2")
	require.Error(t, err)
	assert.True(t, s.IsUniqueViolation(err))

	_, err = s.Query(ctx, "SELECT * FROM nowhere")
	require.Error(t, err)
	assert.True(t, s.IsMissingTable(err))
	assert.Equal(t, KindSQLite, s.Kind())
}

func TestInitializeFallsBackWhenPrimaryUnreachable(t *testing.T) {
	cfg := testConfig(t)
	ini := NewInitializer(cfg, zerolog.Nop())

	s, err := ini.Initialize(context.Background())
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, KindSQLite, s.Kind())
	assert.FileExists(t, cfg.Storage.FallbackPath)
}

func TestInitializeUsesPrimaryWhenAvailable(t *testing.T) {
	ctx := context.Background()
	primary, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "primary.db"))
	require.NoError(t, err)

	fallbackCalled := false
	ini := NewInitializer(testConfig(t), zerolog.Nop(),
		WithPrimary(func(context.Context) (Store, error) { return primary, nil }),
		WithFallback(func(context.Context) (Store, error) {
			fallbackCalled = true
			return nil, errors.New("unexpected")
		}),
	)

	s, err := ini.Initialize(ctx)
	require.NoError(t, err)
	defer s.Close()

	assert.Same(t, primary, s)
	assert.False(t, fallbackCalled)
}

func TestInitializeReportsBothFailures(t *testing.T) {
	ini := NewInitializer(testConfig(t), zerolog.Nop(),
		WithPrimary(func(context.Context) (Store, error) { return nil, errors.New("connection refused") }),
		WithFallback(func(context.Context) (Store, error) { return nil, errors.New("read-only file system") }),
	)

	s, err := ini.Initialize(context.Background())
	assert.Nil(t, s)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStoreUnavailable))
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), "read-only file system")
}
