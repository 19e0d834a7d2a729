package repositories

import (
	"context"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create inserts a new user. A duplicate identifier is a CONFLICT error.
	Create(ctx context.Context, user *entities.User) error

	// InsertMany inserts users in one batch
	InsertMany(ctx context.Context, users []*entities.User) error

	// Upsert inserts the user or updates the one with the same identifier
	Upsert(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByIdentifier retrieves a user by identifier, ignoring case
	GetByIdentifier(ctx context.Context, identifier string) (*entities.User, error)

	// List retrieves users
	List(ctx context.Context, opts ListOptions) ([]*entities.User, error)

	// Count returns the number of users
	Count(ctx context.Context) (int64, error)
}
