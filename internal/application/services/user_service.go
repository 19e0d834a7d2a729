package services

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/rs/zerolog"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// RegisterInput carries a registration request.
type RegisterInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Redirect   string `json:"redirect"`
}

// UserService handles registration and login.
type UserService struct {
	repo   repositories.UserRepository
	logger zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo repositories.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Register creates an account. Identifiers are unique without regard to
// case; a duplicate, including one that loses a concurrent race, is a
// CONFLICT error.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	ctx, span := observability.StartSpan(ctx, "UserService.Register")
	defer span.End()

	identifier := strings.TrimSpace(input.Identifier)
	if identifier == "" || input.Password == "" || input.Role == "" {
		return nil, apperrors.NewValidationError("identifier, password and role are required")
	}
	if len(input.Password) < MinPasswordLength {
		return nil, apperrors.NewValidationError("password must be at least 6 characters")
	}

	user := &entities.User{
		Identifier: identifier,
		Password:   input.Password,
		Role:       entities.Role(input.Role),
		Redirect:   input.Redirect,
	}
	if user.Redirect == "" {
		user.Redirect = entities.DefaultRedirect
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	_, err := s.repo.GetByIdentifier(ctx, identifier)
	if err == nil {
		return nil, apperrors.NewConflictError("user already exists", nil)
	}
	if !apperrors.IsNotFound(err) {
		observability.RecordError(span, err)
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if apperrors.IsConflict(err) {
			return nil, apperrors.NewConflictError("user already exists", err)
		}
		observability.RecordError(span, err)
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

// Login returns the account matching identifier and password.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*entities.User, error) {
	ctx, span := observability.StartSpan(ctx, "UserService.Login")
	defer span.End()

	if strings.TrimSpace(identifier) == "" || password == "" {
		return nil, apperrors.NewValidationError("identifier and password are required")
	}

	user, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		observability.RecordError(span, err)
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}
	return user, nil
}
