package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

const defaultSosRadiusKm = 5

// SosQuery selects emergency reports. When Near is set only reports within
// MaxDistanceMeters of it are returned, nearest first.
type SosQuery struct {
	Near              *entities.GeoPoint
	MaxDistanceMeters float64
	Status            entities.SosStatus
	Limit             int
}

// SosService raises and lists emergency reports.
type SosService struct {
	repo   repositories.SosReportRepository
	logger zerolog.Logger
}

// NewSosService creates a new SOS service.
func NewSosService(repo repositories.SosReportRepository, logger zerolog.Logger) *SosService {
	return &SosService{repo: repo, logger: logger}
}

// Report stores a new emergency report. At least one symptom is required.
func (s *SosService) Report(ctx context.Context, report *entities.SosReport) error {
	ctx, span := observability.StartSpan(ctx, "SosService.Report")
	defer span.End()

	if len(report.Symptoms) == 0 {
		return apperrors.NewValidationError("at least one symptom is required")
	}
	report.Status = entities.SosStatusPending
	if err := report.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, report); err != nil {
		observability.RecordError(span, err)
		return err
	}
	s.logger.Warn().
		Str("sos_id", report.ID).
		Float64("lat", report.Location.Latitude()).
		Float64("lng", report.Location.Longitude()).
		Msg("sos report raised")
	return nil
}

// List returns reports newest first, or nearest first when q.Near is set.
func (s *SosService) List(ctx context.Context, q SosQuery) ([]*entities.SosReport, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if q.Near != nil {
		return s.repo.Nearby(ctx, repositories.NearbyQuery{
			Latitude:  q.Near.Latitude(),
			Longitude: q.Near.Longitude(),
			RadiusKm:  radiusKm(q.MaxDistanceMeters, defaultSosRadiusKm),
			Limit:     limit,
		})
	}
	return s.repo.List(ctx, repositories.SosReportFilter{
		Status:      q.Status,
		ListOptions: repositories.ListOptions{Limit: limit},
	})
}
