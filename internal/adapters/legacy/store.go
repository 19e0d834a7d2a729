// Package legacy reads the pre-migration SQLite database file and converts
// its flat rows into entities (and back, for snapshots).
package legacy

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/zatekoja/unitycure/backend/internal/domain/providers"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/clients/sqlite"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// ErrNotFound is returned by Open when the legacy file does not exist.
var ErrNotFound = errors.New("legacy database not found")

// Store is a read-only view over a legacy database file.
type Store struct {
	client *sqlite.Client
}

var _ providers.RowSource = (*Store)(nil)

// Open opens the legacy file at path without creating it.
func Open(ctx context.Context, path string) (*Store, error) {
	client, err := sqlite.OpenReadOnly(ctx, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open legacy database: %w", err)
	}
	return &Store{client: client}, nil
}

// Tables returns the known table names in migration order.
func (s *Store) Tables() []string {
	return schema.TableNames
}

// ReadTable returns every row of table. A table missing from the file yields
// a TABLE_ABSENT error.
func (s *Store) ReadTable(ctx context.Context, table string) ([]Row, error) {
	if !schema.IsKnown(table) {
		return nil, apperrors.NewValidationError("unknown table " + table)
	}
	rows, err := s.client.DB().QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		if sqlite.IsMissingTable(err) {
			return nil, apperrors.NewTableAbsentError(table, err)
		}
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read %s columns: %w", table, err)
	}
	out := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				values[i] = string(b)
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}

// Close releases the file handle.
func (s *Store) Close() error {
	return s.client.Close()
}
