package providers

import "context"

// RowSource exposes tables as flat legacy-shaped rows. It is what snapshots
// are written from.
type RowSource interface {
	// Tables lists the tables the source may hold.
	Tables() []string

	// ReadTable returns all rows of table, or a TABLE_ABSENT error when the
	// source has no such table.
	ReadTable(ctx context.Context, table string) ([]map[string]any, error)
}
