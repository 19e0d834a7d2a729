// Package legacytest builds legacy database files for tests.
package legacytest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/clients/sqlite"
)

// DDL for the legacy tables, as the old application created them.
const (
	Users = `CREATE TABLE users (id INTEGER PRIMARY KEY AUTOINCREMENT, identifier TEXT UNIQUE, password TEXT, role TEXT, redirect TEXT)`

	Hospitals = `CREATE TABLE hospitals (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, address TEXT, lat REAL, lng REAL, contact TEXT, services TEXT, specialty TEXT, emergency_services INTEGER)`

	Appointments = `CREATE TABLE appointments (id INTEGER PRIMARY KEY AUTOINCREMENT, doctor_name TEXT, hospital TEXT, type TEXT, date TEXT, time TEXT, patient_name TEXT, patient_age INTEGER, patient_contact TEXT, reason TEXT)`

	SosReports = `CREATE TABLE sos_reports (id INTEGER PRIMARY KEY AUTOINCREMENT, lat REAL, lng REAL, symptoms TEXT, description TEXT)`

	Feedback = `CREATE TABLE feedback (id INTEGER PRIMARY KEY AUTOINCREMENT, service_id TEXT, service_type TEXT, user_id TEXT, rating INTEGER, review TEXT)`

	Providers = `CREATE TABLE providers (id INTEGER PRIMARY KEY AUTOINCREMENT, provider_type TEXT, name TEXT, address TEXT, lat REAL, lng REAL, contact TEXT, services TEXT, specialty TEXT, admin_name TEXT, admin_email TEXT)`

	ContactMessages = `CREATE TABLE contact_messages (id INTEGER PRIMARY KEY AUTOINCREMENT, first_name TEXT, last_name TEXT, email TEXT, phone TEXT, subject TEXT, message TEXT, newsletter INTEGER)`

	ChatbotMessages = `CREATE TABLE chatbot_messages (id INTEGER PRIMARY KEY AUTOINCREMENT, user_id TEXT, user_message TEXT, bot_response TEXT)`
)

// Write creates a legacy file in a temp directory by running stmts and
// returns its path.
func Write(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unitycure.db")
	client, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	defer client.Close()

	for _, stmt := range stmts {
		_, err := client.DB().Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return path
}
