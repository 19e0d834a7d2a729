package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
)

// AppointmentService defines the booking operations used by the handler
type AppointmentService interface {
	Book(ctx context.Context, appointment *entities.Appointment) error
	List(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error)
}

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	service AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type appointmentRequest struct {
	DoctorName string           `json:"doctorName"`
	Hospital   string           `json:"hospital"`
	Type       string           `json:"type"`
	Date       string           `json:"date"`
	Time       string           `json:"time"`
	Patient    entities.Patient `json:"patient"`
}

// BookAppointment handles POST /api/appointments
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	appointment := &entities.Appointment{
		DoctorName: strings.TrimSpace(req.DoctorName),
		Hospital:   strings.TrimSpace(req.Hospital),
		Type:       strings.TrimSpace(req.Type),
		Date:       date,
		Time:       strings.TrimSpace(req.Time),
		Patient:    req.Patient,
	}
	if err := h.service.Book(r.Context(), appointment); err != nil {
		respondWithAppError(w, err, "appointment error")
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"ok":          true,
		"appointment": appointment,
	})
}

// ListAppointments handles GET /api/appointments?doctor=&hospital=&limit=
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.AppointmentFilter{
		DoctorName:  q.Get("doctor"),
		Hospital:    q.Get("hospital"),
		ListOptions: repositories.ListOptions{Limit: queryInt(r, "limit", 0)},
	}
	appointments, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err, "get appointments error")
		return
	}
	respondOK(w, map[string]interface{}{"appointments": appointments})
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
