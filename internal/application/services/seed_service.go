package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/observability"
)

// SeedReport counts the records inserted by a seed run.
type SeedReport struct {
	Users     int `json:"users"`
	Hospitals int `json:"hospitals"`
}

// SeedService fills an empty store with the default accounts and hospitals.
type SeedService struct {
	users     repositories.UserRepository
	hospitals repositories.HospitalRepository
	logger    zerolog.Logger
}

// NewSeedService creates a new seed service.
func NewSeedService(users repositories.UserRepository, hospitals repositories.HospitalRepository, logger zerolog.Logger) *SeedService {
	return &SeedService{
		users:     users,
		hospitals: hospitals,
		logger:    logger.With().Str("component", "seed").Logger(),
	}
}

// SeedUsers returns the default accounts, one per role.
func SeedUsers() []*entities.User {
	return []*entities.User{
		{Identifier: "citizen@example.com", Password: "Test@123", Role: entities.RoleCitizen, Redirect: "/user_dashboard.html"},
		{Identifier: "9876543210", Password: "Test@123", Role: entities.RoleCitizen, Redirect: "/user_dashboard.html"},
		{Identifier: "hospitaladmin@uc.com", Password: "Admin@123", Role: entities.RoleHospitalStaff, Redirect: "/resource_management.html"},
		{Identifier: "doctor@uc.com", Password: "Doc@123", Role: entities.RoleDoctor, Redirect: "/doctor_schedule.html"},
		{Identifier: "dispatcher@uc.com", Password: "Disp@123", Role: entities.RoleDispatcher, Redirect: "/dispatcher_dashboard.html"},
		{Identifier: "platformadmin@uc.com", Password: "Root@123", Role: entities.RolePlatformAdmin, Redirect: "/platform_admin_dashboard.html"},
	}
}

// SeedHospitals returns the default hospitals.
func SeedHospitals() []*entities.Hospital {
	return []*entities.Hospital{
		{
			Name:              "Unity General Hospital",
			Address:           "123 Healthcare Ave, Medical District",
			Location:          entities.NewPoint(-74.0060, 40.7128),
			Contact:           "+1-555-0101",
			Services:          []string{"Emergency", "Cardiology", "Pediatrics"},
			Specialty:         "General",
			EmergencyServices: true,
		},
		{
			Name:              "City Medical Center",
			Address:           "456 Wellness Blvd, Downtown",
			Location:          entities.NewPoint(-73.9851, 40.7589),
			Contact:           "+1-555-0102",
			Services:          []string{"Surgery", "Oncology", "Neurology"},
			Specialty:         "Specialized",
			EmergencyServices: true,
		},
		{
			Name:              "Community Health Clinic",
			Address:           "789 Care Street, Suburbia",
			Location:          entities.NewPoint(-73.9934, 40.7505),
			Contact:           "+1-555-0103",
			Services:          []string{"Primary Care", "Vaccination", "Mental Health"},
			Specialty:         "Community",
			EmergencyServices: false,
		},
	}
}

// Seed inserts the default users and hospitals into collections that are
// empty. Collections that already hold records are left alone, so calling
// Seed repeatedly is safe.
func (s *SeedService) Seed(ctx context.Context) (*SeedReport, error) {
	ctx, span := observability.StartSpan(ctx, "SeedService.Seed")
	defer span.End()

	report := &SeedReport{}

	userCount, err := s.users.Count(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, fmt.Errorf("count users: %w", err)
	}
	if userCount == 0 {
		users := SeedUsers()
		if err := s.users.InsertMany(ctx, users); err != nil {
			observability.RecordError(span, err)
			return nil, fmt.Errorf("seed users: %w", err)
		}
		report.Users = len(users)
		s.logger.Info().Int("count", report.Users).Msg("users seeded")
	}

	hospitalCount, err := s.hospitals.Count(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, fmt.Errorf("count hospitals: %w", err)
	}
	if hospitalCount == 0 {
		hospitals := SeedHospitals()
		if err := s.hospitals.InsertMany(ctx, hospitals); err != nil {
			observability.RecordError(span, err)
			return nil, fmt.Errorf("seed hospitals: %w", err)
		}
		report.Hospitals = len(hospitals)
		s.logger.Info().Int("count", report.Hospitals).Msg("hospitals seeded")
	}

	return report, nil
}
