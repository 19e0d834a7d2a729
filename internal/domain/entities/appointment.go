package entities

import (
	"strings"
	"time"

	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

const maxPatientAge = 150

// Patient is embedded in an appointment.
type Patient struct {
	Name    string `json:"name"`
	Age     *int   `json:"age,omitempty"`
	Contact string `json:"contact,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Appointment is a booked doctor visit.
type Appointment struct {
	ID         string    `json:"id"`
	DoctorName string    `json:"doctorName"`
	Hospital   string    `json:"hospital"`
	Type       string    `json:"type"`
	Date       time.Time `json:"date"`
	Time       string    `json:"time"`
	Patient    Patient   `json:"patient"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ValidAge reports whether age is inside the accepted range.
func ValidAge(age int) bool {
	return age >= 0 && age <= maxPatientAge
}

// Validate checks required fields and the patient age range.
func (a *Appointment) Validate() error {
	switch {
	case strings.TrimSpace(a.DoctorName) == "":
		return apperrors.NewValidationError("doctorName is required")
	case strings.TrimSpace(a.Hospital) == "":
		return apperrors.NewValidationError("hospital is required")
	case strings.TrimSpace(a.Type) == "":
		return apperrors.NewValidationError("type is required")
	case a.Date.IsZero():
		return apperrors.NewValidationError("date is required")
	case strings.TrimSpace(a.Time) == "":
		return apperrors.NewValidationError("time is required")
	case strings.TrimSpace(a.Patient.Name) == "":
		return apperrors.NewValidationError("patient name is required")
	}
	if a.Patient.Age != nil && !ValidAge(*a.Patient.Age) {
		return apperrors.NewValidationError("patient age out of range")
	}
	return nil
}
