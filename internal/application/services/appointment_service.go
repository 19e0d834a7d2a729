package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/observability"
)

const defaultListLimit = 50

// AppointmentService books and lists appointments.
type AppointmentService struct {
	repo   repositories.AppointmentRepository
	logger zerolog.Logger
}

// NewAppointmentService creates a new appointment service.
func NewAppointmentService(repo repositories.AppointmentRepository, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{repo: repo, logger: logger}
}

// Book validates and stores an appointment.
func (s *AppointmentService) Book(ctx context.Context, appointment *entities.Appointment) error {
	ctx, span := observability.StartSpan(ctx, "AppointmentService.Book")
	defer span.End()

	if err := appointment.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		observability.RecordError(span, err)
		return err
	}
	s.logger.Info().
		Str("appointment_id", appointment.ID).
		Str("hospital", appointment.Hospital).
		Msg("appointment booked")
	return nil
}

// List returns appointments matching filter, at most 50 unless a limit is set.
func (s *AppointmentService) List(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	return s.repo.List(ctx, filter)
}
