package repositories

import (
	"context"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
)

// ProviderRepository defines the interface for provider data operations
type ProviderRepository interface {
	Create(ctx context.Context, provider *entities.Provider) error
	InsertMany(ctx context.Context, providers []*entities.Provider) error
	GetByID(ctx context.Context, id string) (*entities.Provider, error)

	// GetByIDs retrieves providers by ID, keeping the order of ids
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Provider, error)

	List(ctx context.Context, filter ProviderFilter) ([]*entities.Provider, error)
	Nearby(ctx context.Context, query NearbyQuery) ([]*entities.Provider, error)
	Count(ctx context.Context) (int64, error)
}

// ProviderFilter defines filters for listing providers. Query matches name,
// specialty or services.
type ProviderFilter struct {
	ProviderType string
	Query        string
	VerifiedOnly bool
	ListOptions
}

// ProviderSearchRepository is a full-text index over providers (e.g. Typesense)
type ProviderSearchRepository interface {
	// InitSchema creates the index when it does not exist
	InitSchema(ctx context.Context) error

	// Index adds or replaces a provider document
	Index(ctx context.Context, provider *entities.Provider) error

	// Search returns matching provider IDs, best match first
	Search(ctx context.Context, query string, limit int) ([]string, error)
}
