package entities

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Citizen@Example.COM ", "citizen@example.com"},
		{"9876543210", "9876543210"},
		{"ÉMILE@uc.com", "émile@uc.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeIdentifier(tt.in), tt.in)
	}

	u := &User{Identifier: "DOCTOR@uc.com"}
	assert.Equal(t, NormalizeIdentifier("doctor@UC.com"), u.IdentifierKey())
}

func TestUserValidate(t *testing.T) {
	u := &User{Identifier: "a@b.co", Password: "secret", Role: RoleDispatcher, Redirect: DefaultRedirect}
	require.NoError(t, u.Validate())

	u.Role = "Nurse"
	assert.True(t, apperrors.IsType(u.Validate(), apperrors.ErrorTypeValidation))
	assert.False(t, Role("citizen").IsValid())
}

func TestGeoPoint(t *testing.T) {
	p := NewPoint(-74.006, 40.7128)
	assert.Equal(t, -74.006, p.Longitude())
	assert.Equal(t, 40.7128, p.Latitude())
	require.NoError(t, p.Validate())

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Point","coordinates":[-74.006,40.7128]}`, string(data))

	assert.Error(t, NewPoint(200, 0).Validate())
	assert.Error(t, NewPoint(0, -91).Validate())
	assert.Error(t, NewPoint(math.NaN(), 0).Validate())
	assert.Error(t, NewPoint(0, math.Inf(1)).Validate())
}

func TestFeedbackRatingRange(t *testing.T) {
	for rating, ok := range map[int]bool{0: false, 1: true, 5: true, 6: false} {
		f := &Feedback{ServiceID: "h-1", ServiceType: ServiceTypeHospital, Rating: rating}
		if ok {
			assert.NoError(t, f.Validate(), rating)
		} else {
			assert.Error(t, f.Validate(), rating)
		}
	}
}

func TestAppointmentPatientAge(t *testing.T) {
	age := 151
	a := &Appointment{
		DoctorName: "Dr. Rao", Hospital: "Unity General Hospital", Type: "consultation",
		Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), Time: "09:30",
		Patient: Patient{Name: "Asha", Age: &age},
	}
	assert.Error(t, a.Validate())

	age = 0
	assert.NoError(t, a.Validate())

	a.Patient.Age = nil
	assert.NoError(t, a.Validate())
}

func TestContactMessageNormalizes(t *testing.T) {
	c := &ContactMessage{
		FirstName: " Ada ", LastName: "Lovelace", Email: " Ada@Example.com ",
		Subject: "Hello", Message: "Question about beds",
	}
	require.NoError(t, c.Validate())
	assert.Equal(t, "ada@example.com", c.Email)
	assert.Equal(t, ContactStatusNew, c.Status)
	assert.True(t, ValidEmail(c.Email))
	assert.False(t, ValidEmail("not-an-email"))
}

func TestSosReportDefaults(t *testing.T) {
	s := &SosReport{Location: NewPoint(0, 0)}
	require.NoError(t, s.Validate())
	assert.Equal(t, SosStatusPending, s.Status)
	assert.NotNil(t, s.Symptoms)

	s.Status = "lost"
	assert.Error(t, s.Validate())
}

func TestNewDataEvent(t *testing.T) {
	e := NewDataEvent(DataEventHospitalRated, "h-1", map[string]interface{}{"count": 2})
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "h-1", e.RecordID)
	assert.Equal(t, time.UTC, e.Timestamp.Location())
}
