package repositories

import (
	"context"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
)

// HospitalRepository defines the interface for hospital data operations
type HospitalRepository interface {
	// Create inserts a new hospital. A duplicate name is a CONFLICT error.
	Create(ctx context.Context, hospital *entities.Hospital) error

	// InsertMany inserts hospitals in one batch
	InsertMany(ctx context.Context, hospitals []*entities.Hospital) error

	// Upsert inserts the hospital or updates the one with the same name.
	// The rating of an existing hospital is left untouched.
	Upsert(ctx context.Context, hospital *entities.Hospital) error

	// GetByID retrieves a hospital by ID
	GetByID(ctx context.Context, id string) (*entities.Hospital, error)

	// GetByName retrieves a hospital by name
	GetByName(ctx context.Context, name string) (*entities.Hospital, error)

	// List retrieves hospitals with filters
	List(ctx context.Context, filter HospitalFilter) ([]*entities.Hospital, error)

	// Nearby retrieves hospitals around a point
	Nearby(ctx context.Context, query NearbyQuery) ([]*entities.Hospital, error)

	// UpdateRating replaces the rating aggregate
	UpdateRating(ctx context.Context, id string, average float64, count int) error

	// Count returns the number of hospitals
	Count(ctx context.Context) (int64, error)
}

// HospitalFilter defines filters for listing hospitals
type HospitalFilter struct {
	Specialty     string
	EmergencyOnly bool
	ListOptions
}
