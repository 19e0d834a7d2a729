package legacy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

func TestToHospitalPutsLongitudeFirst(t *testing.T) {
	h, err := ToHospital(Row{"name": "Unity", "lat": 40.7, "lng": -74.0, "services": "A,B,C", "emergency_services": int64(1)})
	require.NoError(t, err)

	assert.Equal(t, [2]float64{-74.0, 40.7}, h.Location.Coordinates)
	assert.Equal(t, entities.GeoPointType, h.Location.Type)
	assert.Equal(t, []string{"A", "B", "C"}, h.Services)
	assert.True(t, h.EmergencyServices)
}

func TestToHospitalNullCoordinatesDefaultToOrigin(t *testing.T) {
	h, err := ToHospital(Row{"name": "Nowhere", "lat": nil, "lng": nil, "services": nil})
	require.NoError(t, err)

	assert.Equal(t, [2]float64{0, 0}, h.Location.Coordinates)
	assert.NotNil(t, h.Services)
	assert.Empty(t, h.Services)
}

func TestListColumns(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{name: "comma delimited", value: "A,B,C", want: []string{"A", "B", "C"}},
		{name: "json array", value: `["A","B"]`, want: []string{"A", "B"}},
		{name: "null", value: nil, want: []string{}},
		{name: "padded", value: " fever , cough ", want: []string{"fever", "cough"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ToSosReport(Row{"lat": 1.0, "lng": 2.0, "symptoms": tt.value})
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Symptoms)
			assert.Equal(t, entities.SosStatusPending, s.Status)
		})
	}
}

func TestToHospitalRejectsBadCoordinates(t *testing.T) {
	_, err := ToHospital(Row{"name": "Bad", "lat": "north", "lng": 1.0})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRowTransform))

	_, err = ToHospital(Row{"name": "Bad", "lat": 95.0, "lng": 1.0})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRowTransform))
}

func TestToAppointmentPatientAge(t *testing.T) {
	base := func(age any) Row {
		return Row{
			"doctor_name": "Dr. Rao", "hospital": "Unity", "type": "checkup",
			"date": "2024-03-15", "time": "10:00", "patient_name": "Ann", "patient_age": age,
		}
	}

	a, err := ToAppointment(base(int64(34)))
	require.NoError(t, err)
	require.NotNil(t, a.Patient.Age)
	assert.Equal(t, 34, *a.Patient.Age)
	assert.True(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).Equal(a.Date))

	for _, garbage := range []any{nil, "", "unknown", int64(-3), int64(400), 12.5} {
		a, err := ToAppointment(base(garbage))
		require.NoError(t, err)
		assert.Nil(t, a.Patient.Age, "%v", garbage)
	}
}

func TestToAppointmentRequiresDate(t *testing.T) {
	_, err := ToAppointment(Row{"doctor_name": "Dr. Rao", "date": "someday"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRowTransform))

	_, err = ToAppointment(Row{"doctor_name": "Dr. Rao"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRowTransform))
}

func TestToUser(t *testing.T) {
	u, err := ToUser(Row{"identifier": " Citizen@Example.com ", "password": "pw", "role": "Citizen"})
	require.NoError(t, err)
	assert.Equal(t, "Citizen@Example.com", u.Identifier)
	assert.Equal(t, "citizen@example.com", u.IdentifierKey())
	assert.Equal(t, entities.DefaultRedirect, u.Redirect)

	_, err = ToUser(Row{"identifier": "x", "password": "pw", "role": "Wizard"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRowTransform))
}

func TestToFeedbackRatingRange(t *testing.T) {
	f, err := ToFeedback(Row{"service_id": "1", "service_type": "hospital", "rating": int64(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, f.Rating)

	_, err = ToFeedback(Row{"service_id": "1", "service_type": "hospital", "rating": int64(9)})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRowTransform))
}

func TestToContactMessageLowercasesEmail(t *testing.T) {
	c, err := ToContactMessage(Row{
		"first_name": "Ann", "last_name": "Lee", "email": "Ann@Example.COM",
		"subject": "Hi", "message": "Hello", "newsletter": int64(1),
	})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", c.Email)
	assert.True(t, c.Newsletter)
	assert.Equal(t, entities.ContactStatusNew, c.Status)
}

func TestExportRoundTrip(t *testing.T) {
	age := 30
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	h := &entities.Hospital{
		Name: "Unity", Location: entities.NewPoint(-74.0, 40.7), Services: []string{"A", "B"},
		EmergencyServices: true, Rating: entities.Rating{Average: 4.5, Count: 2},
		CreatedAt: created, UpdatedAt: created,
	}
	gotH, err := ToHospital(FromHospital(h))
	require.NoError(t, err)
	assert.Equal(t, h, gotH)

	a := &entities.Appointment{
		DoctorName: "Dr. Rao", Hospital: "Unity", Type: "checkup", Date: created, Time: "10:00",
		Patient: entities.Patient{Name: "Ann", Age: &age}, CreatedAt: created, UpdatedAt: created,
	}
	gotA, err := ToAppointment(FromAppointment(a))
	require.NoError(t, err)
	assert.Equal(t, a, gotA)
}
