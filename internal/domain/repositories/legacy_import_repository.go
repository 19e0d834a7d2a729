package repositories

import (
	"context"
	"time"
)

// LegacyImportRepository remembers which legacy files have been migrated
type LegacyImportRepository interface {
	// IsImported reports whether source was migrated before
	IsImported(ctx context.Context, source string) (bool, error)

	// MarkImported records a finished migration of source
	MarkImported(ctx context.Context, source string, rows int, at time.Time) error
}
