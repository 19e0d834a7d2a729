package entities

import (
	"time"

	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// SosStatus tracks an emergency report.
type SosStatus string

const (
	SosStatusPending    SosStatus = "pending"
	SosStatusInProgress SosStatus = "in_progress"
	SosStatusResolved   SosStatus = "resolved"
)

// SosStatuses lists every accepted status.
var SosStatuses = []SosStatus{SosStatusPending, SosStatusInProgress, SosStatusResolved}

// SosReport is an emergency report raised from a location.
type SosReport struct {
	ID          string    `json:"id"`
	Location    GeoPoint  `json:"location"`
	Symptoms    []string  `json:"symptoms"`
	Description string    `json:"description,omitempty"`
	Status      SosStatus `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks the location and status, defaulting the status to pending.
// A non-empty symptom list is enforced when a report is raised, not here,
// because migrated rows may legitimately carry none.
func (s *SosReport) Validate() error {
	if s.Symptoms == nil {
		s.Symptoms = []string{}
	}
	if s.Status == "" {
		s.Status = SosStatusPending
	}
	valid := false
	for _, status := range SosStatuses {
		if s.Status == status {
			valid = true
		}
	}
	if !valid {
		return apperrors.NewValidationError("sos status " + string(s.Status) + " is not recognized")
	}
	return s.Location.Validate()
}
