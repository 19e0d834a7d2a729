package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/zatekoja/unitycure/backend/pkg/config"
	"github.com/zatekoja/unitycure/backend/pkg/retry"
)

const (
	codeUniqueViolation    = "23505"
	codeUndefinedTable     = "42P01"
	codeInvalidCatalogName = "3D000"
	codeDuplicateDatabase  = "42P04"
	maxIdleConns           = 5
	connMaxLifetime        = 5 * time.Minute
)

// Client represents a PostgreSQL database client
type Client struct {
	db *sql.DB
}

// NewClient connects to the configured database, creating it first when the
// server reports that it does not exist. Every connection attempt is bounded
// by cfg.ConnectTimeout so callers can fall back instead of hanging.
func NewClient(ctx context.Context, cfg *config.DatabaseConfig, logger zerolog.Logger) (*Client, error) {
	db, err := connect(ctx, cfg.DatabaseDSN(), cfg, logger)
	if err != nil && IsMissingDatabase(err) {
		logger.Info().Str("database", cfg.Database).Msg("database does not exist, creating it")
		if cerr := createDatabase(ctx, cfg, logger); cerr != nil {
			return nil, cerr
		}
		db, err = connect(ctx, cfg.DatabaseDSN(), cfg, logger)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	logger.Info().Str("host", cfg.Host).Str("database", cfg.Database).Int("pool_size", cfg.PoolSize).
		Msg("connected to PostgreSQL")
	return &Client{db: db}, nil
}

// NewClientFromDB wraps an existing handle.
func NewClientFromDB(db *sql.DB) *Client {
	return &Client{db: db}
}

// connect opens a pool and pings it. database/sql queues callers once
// PoolSize connections are busy; nothing is rejected for lack of a slot.
func connect(ctx context.Context, dsn string, cfg *config.DatabaseConfig, logger zerolog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.PoolSize)
	db.SetMaxIdleConns(min(cfg.PoolSize, maxIdleConns))
	db.SetConnMaxLifetime(connMaxLifetime)

	retryConfig := retry.Bounded(cfg.ConnectTimeout)
	retryConfig.OnRetry = func(attempt int, err error, nextDelay time.Duration) {
		logger.Warn().Err(err).Int("attempt", attempt).Dur("next_delay", nextDelay).
			Msg("PostgreSQL connection attempt failed")
	}
	err = retry.Do(ctx, retryConfig, "PostgreSQL", func(ctx context.Context) error {
		return db.PingContext(ctx)
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func createDatabase(ctx context.Context, cfg *config.DatabaseConfig, logger zerolog.Logger) error {
	maintenance := *cfg
	maintenance.PoolSize = 1
	db, err := connect(ctx, cfg.MaintenanceDSN(), &maintenance, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to maintenance database: %w", err)
	}
	defer db.Close()

	createCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	return EnsureDatabase(createCtx, db, cfg.Database)
}

// EnsureDatabase creates the named database when pg_database lacks it.
func EnsureDatabase(ctx context.Context, db *sql.DB, name string) error {
	var exists bool
	err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`, name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check database %s: %w", name, err)
	}
	if exists {
		return nil
	}
	if _, err := db.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		if hasCode(err, codeDuplicateDatabase) {
			return nil
		}
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}

// DB returns the underlying database connection
func (c *Client) DB() *sql.DB {
	return c.db
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}

// Ping verifies the connection to the database
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// IsUniqueViolation reports a duplicate key error.
func IsUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// IsUndefinedTable reports a missing relation error.
func IsUndefinedTable(err error) bool {
	return hasCode(err, codeUndefinedTable)
}

// IsMissingDatabase reports that the target database does not exist.
func IsMissingDatabase(err error) bool {
	return hasCode(err, codeInvalidCatalogName)
}

func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}
