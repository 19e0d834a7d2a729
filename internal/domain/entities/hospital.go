package entities

import (
	"strings"
	"time"

	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// Rating is the aggregate of hospital feedback.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Hospital is a listed hospital. Name is its natural key.
type Hospital struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	Location          GeoPoint  `json:"location"`
	Contact           string    `json:"contact"`
	Services          []string  `json:"services"`
	Specialty         string    `json:"specialty"`
	EmergencyServices bool      `json:"emergencyServices"`
	Rating            Rating    `json:"rating"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Validate checks required fields.
func (h *Hospital) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return apperrors.NewValidationError("hospital name is required")
	}
	if h.Services == nil {
		h.Services = []string{}
	}
	return h.Location.Validate()
}
