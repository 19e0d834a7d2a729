package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/unitycure/backend/internal/api/handlers"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// MockAppointmentService defines the mock service
type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) Book(ctx context.Context, appointment *entities.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentService) List(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func appointmentPayload(date string) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"doctorName": "Dr. Rao",
		"hospital":   "Unity General Hospital",
		"type":       "consultation",
		"date":       date,
		"time":       "10:30",
		"patient":    map[string]interface{}{"name": "John Doe", "age": 42},
	})
	return body
}

func TestAppointmentHandler_BookAppointment(t *testing.T) {
	t.Run("successfully books appointment", func(t *testing.T) {
		mockService := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(mockService)

		mockService.On("Book", mock.Anything, mock.MatchedBy(func(a *entities.Appointment) bool {
			return a.DoctorName == "Dr. Rao" &&
				a.Patient.Name == "John Doe" &&
				a.Patient.Age != nil && *a.Patient.Age == 42 &&
				a.Date.Format("2006-01-02") == "2026-03-01"
		})).Return(nil)

		req := httptest.NewRequest("POST", "/api/appointments", bytes.NewBuffer(appointmentPayload("2026-03-01")))
		w := httptest.NewRecorder()
		handler.BookAppointment(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("returns bad request for invalid payload", func(t *testing.T) {
		mockService := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(mockService)

		req := httptest.NewRequest("POST", "/api/appointments", bytes.NewBufferString("invalid-json"))
		w := httptest.NewRecorder()
		handler.BookAppointment(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Book", mock.Anything, mock.Anything)
	})

	t.Run("returns bad request for unparseable date", func(t *testing.T) {
		mockService := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(mockService)

		req := httptest.NewRequest("POST", "/api/appointments", bytes.NewBuffer(appointmentPayload("next tuesday")))
		w := httptest.NewRecorder()
		handler.BookAppointment(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps validation errors to bad request", func(t *testing.T) {
		mockService := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(mockService)
		mockService.On("Book", mock.Anything, mock.Anything).Return(apperrors.NewValidationError("patient age out of range"))

		req := httptest.NewRequest("POST", "/api/appointments", bytes.NewBuffer(appointmentPayload("2026-03-01")))
		w := httptest.NewRecorder()
		handler.BookAppointment(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, false, response["ok"])
		assert.Equal(t, "patient age out of range", response["error"])
	})

	t.Run("returns internal error on service failure", func(t *testing.T) {
		mockService := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(mockService)
		mockService.On("Book", mock.Anything, mock.Anything).Return(errors.New("db down"))

		req := httptest.NewRequest("POST", "/api/appointments", bytes.NewBuffer(appointmentPayload("2026-03-01")))
		w := httptest.NewRecorder()
		handler.BookAppointment(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})
}

func TestAppointmentHandler_ListAppointments(t *testing.T) {
	mockService := new(MockAppointmentService)
	handler := handlers.NewAppointmentHandler(mockService)

	mockService.On("List", mock.Anything, mock.MatchedBy(func(f repositories.AppointmentFilter) bool {
		return f.DoctorName == "Dr. Rao" && f.Limit == 5
	})).Return([]*entities.Appointment{{ID: "a-1", DoctorName: "Dr. Rao"}}, nil)

	req := httptest.NewRequest("GET", "/api/appointments?doctor=Dr.+Rao&limit=5", nil)
	w := httptest.NewRecorder()
	handler.ListAppointments(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"a-1"`)
	mockService.AssertExpectations(t)
}
