// Package sqlite opens embedded SQLite databases: the fallback live store and
// read-only handles on legacy database files.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const pragmas = "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)"

// Client wraps a SQLite handle.
type Client struct {
	db   *sql.DB
	path string
}

// Open opens (creating when absent) a writable database at path. The parent
// directory is created as needed; a missing or empty file is a valid start.
// A single connection is used so writers queue instead of failing with SQLITE_BUSY.
func Open(ctx context.Context, path string) (*Client, error) {
	cleanPath, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}
	db, err := open(ctx, cleanPath+"?"+pragmas)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return &Client{db: db, path: cleanPath}, nil
}

// OpenReadOnly opens an existing database file for queries only. It returns
// an error wrapping os.ErrNotExist when the file is absent rather than creating it.
func OpenReadOnly(ctx context.Context, path string) (*Client, error) {
	cleanPath, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(cleanPath); err != nil {
		return nil, fmt.Errorf("stat sqlite db: %w", err)
	}
	db, err := open(ctx, cleanPath+"?_pragma=query_only(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	return &Client{db: db, path: cleanPath}, nil
}

func cleanPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("storage path is required")
	}
	return filepath.Clean(path), nil
}

func open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}

// DB returns the underlying handle.
func (c *Client) DB() *sql.DB {
	return c.db
}

// Path returns the database file path.
func (c *Client) Path() string {
	return c.path
}

// Close closes the handle.
func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Ping verifies the handle.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// IsUniqueViolation reports a primary key or unique constraint failure.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

// IsMissingTable reports a query against a table that does not exist.
func IsMissingTable(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such table")
}
