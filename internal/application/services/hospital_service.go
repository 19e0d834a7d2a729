package services

import (
	"context"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/observability"
)

const (
	defaultHospitalRadiusKm = 10
	defaultHospitalLimit    = 20
)

// HospitalService serves hospital listings.
type HospitalService struct {
	repo repositories.HospitalRepository
}

// NewHospitalService creates a new hospital service.
func NewHospitalService(repo repositories.HospitalRepository) *HospitalService {
	return &HospitalService{repo: repo}
}

// List returns hospitals matching filter.
func (s *HospitalService) List(ctx context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	ctx, span := observability.StartSpan(ctx, "HospitalService.List")
	defer span.End()

	hospitals, err := s.repo.List(ctx, filter)
	if err != nil {
		observability.RecordError(span, err)
	}
	return hospitals, err
}

// Get returns one hospital.
func (s *HospitalService) Get(ctx context.Context, id string) (*entities.Hospital, error) {
	return s.repo.GetByID(ctx, id)
}

// Nearby returns up to 20 hospitals within maxDistanceMeters of the point,
// nearest first. A non-positive distance means 10km.
func (s *HospitalService) Nearby(ctx context.Context, lat, lng, maxDistanceMeters float64) ([]*entities.Hospital, error) {
	ctx, span := observability.StartSpan(ctx, "HospitalService.Nearby")
	defer span.End()

	hospitals, err := s.repo.Nearby(ctx, repositories.NearbyQuery{
		Latitude:  lat,
		Longitude: lng,
		RadiusKm:  radiusKm(maxDistanceMeters, defaultHospitalRadiusKm),
		Limit:     defaultHospitalLimit,
	})
	if err != nil {
		observability.RecordError(span, err)
	}
	return hospitals, err
}

func radiusKm(meters, fallbackKm float64) float64 {
	if meters <= 0 {
		return fallbackKm
	}
	return meters / 1000
}
