package repositories

import (
	"context"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
)

// SosReportRepository defines the interface for emergency report operations
type SosReportRepository interface {
	Create(ctx context.Context, report *entities.SosReport) error
	InsertMany(ctx context.Context, reports []*entities.SosReport) error
	GetByID(ctx context.Context, id string) (*entities.SosReport, error)
	List(ctx context.Context, filter SosReportFilter) ([]*entities.SosReport, error)

	// Nearby retrieves reports raised around a point
	Nearby(ctx context.Context, query NearbyQuery) ([]*entities.SosReport, error)

	Count(ctx context.Context) (int64, error)
}

// SosReportFilter defines filters for listing reports
type SosReportFilter struct {
	Status entities.SosStatus
	ListOptions
}
