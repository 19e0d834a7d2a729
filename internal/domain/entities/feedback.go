package entities

import (
	"strings"
	"time"

	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// ServiceTypeHospital marks feedback that feeds a hospital rating.
const ServiceTypeHospital = "hospital"

const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is a rating left for a service.
type Feedback struct {
	ID          string    `json:"id"`
	ServiceID   string    `json:"serviceId"`
	ServiceType string    `json:"serviceType"`
	UserID      string    `json:"userId,omitempty"`
	Rating      int       `json:"rating"`
	Review      string    `json:"review,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks required fields and the rating range.
func (f *Feedback) Validate() error {
	if strings.TrimSpace(f.ServiceID) == "" {
		return apperrors.NewValidationError("serviceId is required")
	}
	if strings.TrimSpace(f.ServiceType) == "" {
		return apperrors.NewValidationError("serviceType is required")
	}
	if f.Rating < MinRating || f.Rating > MaxRating {
		return apperrors.NewValidationError("rating must be between 1 and 5")
	}
	return nil
}
