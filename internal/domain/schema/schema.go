// Package schema declares the persisted shape of every entity: table and
// column names, column types, required-ness, enumerations and indexes.
// The same table names are used by the legacy store, the live store and
// the snapshot files.
package schema

import "github.com/zatekoja/unitycure/backend/internal/domain/entities"

// Table names.
const (
	Users           = "users"
	Hospitals       = "hospitals"
	Appointments    = "appointments"
	SosReports      = "sos_reports"
	Feedback        = "feedback"
	Providers       = "providers"
	ContactMessages = "contact_messages"
	ChatbotMessages = "chatbot_messages"
)

// LegacyImports records legacy files that were fully migrated. It lives only
// in the live store and is never part of a snapshot.
const LegacyImports = "legacy_imports"

// TableNames lists the eight known tables in migration order.
var TableNames = []string{
	Users,
	Hospitals,
	Appointments,
	SosReports,
	Feedback,
	Providers,
	ContactMessages,
	ChatbotMessages,
}

// IsKnown reports whether name is one of TableNames.
func IsKnown(name string) bool {
	for _, t := range TableNames {
		if t == name {
			return true
		}
	}
	return false
}

// ColumnType is a storage-neutral column type; each store maps it to a native type.
type ColumnType int

const (
	Text ColumnType = iota
	Integer
	Real
	Boolean
	// StringList holds an ordered list of strings encoded as a JSON array.
	StringList
)

// Column describes one column. Columns are NOT NULL with a zero default
// unless Nullable is set.
type Column struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool
	Unique     bool
	Nullable   bool
	Enum       []string
	Check      string
}

// Index describes a secondary index.
type Index struct {
	Name    string
	Columns []string
}

// Table describes one table.
type Table struct {
	Name    string
	Columns []Column
	Indexes []Index
}

// ColumnNames returns the table's column names in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

func id() Column { return Column{Name: "id", Type: Text, PrimaryKey: true} }

func timestamps() []Column {
	return []Column{
		{Name: "created_at", Type: Integer},
		{Name: "updated_at", Type: Integer},
	}
}

func location() []Column {
	return []Column{
		{Name: "longitude", Type: Real, Check: "longitude BETWEEN -180 AND 180"},
		{Name: "latitude", Type: Real, Check: "latitude BETWEEN -90 AND 90"},
	}
}

func with(cols []Column, more ...[]Column) []Column {
	for _, m := range more {
		cols = append(cols, m...)
	}
	return cols
}

func roles() []string {
	out := make([]string, 0, len(entities.Roles))
	for _, r := range entities.Roles {
		out = append(out, string(r))
	}
	return out
}

func sosStatuses() []string {
	out := make([]string, 0, len(entities.SosStatuses))
	for _, s := range entities.SosStatuses {
		out = append(out, string(s))
	}
	return out
}

func contactStatuses() []string {
	out := make([]string, 0, len(entities.ContactStatuses))
	for _, s := range entities.ContactStatuses {
		out = append(out, string(s))
	}
	return out
}

// Tables returns the live store schema.
func Tables() []Table {
	return []Table{
		{
			Name: Users,
			Columns: with([]Column{
				id(),
				{Name: "identifier", Type: Text},
				{Name: "identifier_key", Type: Text, Unique: true},
				{Name: "password", Type: Text},
				{Name: "role", Type: Text, Enum: roles()},
				{Name: "redirect", Type: Text},
			}, timestamps()),
		},
		{
			Name: Hospitals,
			Columns: with([]Column{
				id(),
				{Name: "name", Type: Text, Unique: true},
				{Name: "address", Type: Text},
			}, location(), []Column{
				{Name: "contact", Type: Text},
				{Name: "services", Type: StringList},
				{Name: "specialty", Type: Text},
				{Name: "emergency_services", Type: Boolean},
				{Name: "rating_average", Type: Real},
				{Name: "rating_count", Type: Integer},
			}, timestamps()),
			Indexes: []Index{
				{Name: "idx_hospitals_location", Columns: []string{"latitude", "longitude"}},
			},
		},
		{
			Name: Appointments,
			Columns: with([]Column{
				id(),
				{Name: "doctor_name", Type: Text},
				{Name: "hospital", Type: Text},
				{Name: "type", Type: Text},
				{Name: "date", Type: Integer},
				{Name: "time", Type: Text},
				{Name: "patient_name", Type: Text},
				{Name: "patient_age", Type: Integer, Nullable: true, Check: "patient_age IS NULL OR patient_age BETWEEN 0 AND 150"},
				{Name: "patient_contact", Type: Text},
				{Name: "reason", Type: Text},
			}, timestamps()),
			Indexes: []Index{
				{Name: "idx_appointments_date_doctor", Columns: []string{"date", "doctor_name"}},
				{Name: "idx_appointments_hospital", Columns: []string{"hospital"}},
			},
		},
		{
			Name: SosReports,
			Columns: with([]Column{id()}, location(), []Column{
				{Name: "symptoms", Type: StringList},
				{Name: "description", Type: Text},
				{Name: "status", Type: Text, Enum: sosStatuses()},
			}, timestamps()),
			Indexes: []Index{
				{Name: "idx_sos_reports_location", Columns: []string{"latitude", "longitude"}},
				{Name: "idx_sos_reports_created_at", Columns: []string{"created_at"}},
			},
		},
		{
			Name: Feedback,
			Columns: with([]Column{
				id(),
				{Name: "service_id", Type: Text},
				{Name: "service_type", Type: Text},
				{Name: "user_id", Type: Text},
				{Name: "rating", Type: Integer, Check: "rating BETWEEN 1 AND 5"},
				{Name: "review", Type: Text},
			}, timestamps()),
			Indexes: []Index{
				{Name: "idx_feedback_service", Columns: []string{"service_id", "service_type"}},
				{Name: "idx_feedback_user", Columns: []string{"user_id"}},
				{Name: "idx_feedback_rating", Columns: []string{"rating"}},
			},
		},
		{
			Name: Providers,
			Columns: with([]Column{
				id(),
				{Name: "provider_type", Type: Text},
				{Name: "name", Type: Text},
				{Name: "address", Type: Text},
			}, location(), []Column{
				{Name: "contact", Type: Text},
				{Name: "services", Type: StringList},
				{Name: "specialty", Type: Text},
				{Name: "admin_name", Type: Text},
				{Name: "admin_email", Type: Text},
				{Name: "verified", Type: Boolean},
			}, timestamps()),
			Indexes: []Index{
				{Name: "idx_providers_location", Columns: []string{"latitude", "longitude"}},
				{Name: "idx_providers_type", Columns: []string{"provider_type"}},
				{Name: "idx_providers_name", Columns: []string{"name"}},
				{Name: "idx_providers_specialty", Columns: []string{"specialty"}},
			},
		},
		{
			Name: ContactMessages,
			Columns: with([]Column{
				id(),
				{Name: "first_name", Type: Text},
				{Name: "last_name", Type: Text},
				{Name: "email", Type: Text},
				{Name: "phone", Type: Text},
				{Name: "subject", Type: Text},
				{Name: "message", Type: Text},
				{Name: "newsletter", Type: Boolean},
				{Name: "status", Type: Text, Enum: contactStatuses()},
			}, timestamps()),
			Indexes: []Index{
				{Name: "idx_contact_messages_email", Columns: []string{"email"}},
				{Name: "idx_contact_messages_created_at", Columns: []string{"created_at"}},
				{Name: "idx_contact_messages_status", Columns: []string{"status"}},
			},
		},
		{
			Name: ChatbotMessages,
			Columns: with([]Column{
				id(),
				{Name: "user_id", Type: Text},
				{Name: "session_id", Type: Text},
				{Name: "user_message", Type: Text},
				{Name: "bot_response", Type: Text},
			}, timestamps()),
			Indexes: []Index{
				{Name: "idx_chatbot_messages_user", Columns: []string{"user_id", "created_at"}},
				{Name: "idx_chatbot_messages_session", Columns: []string{"session_id", "created_at"}},
			},
		},
	}
}

// Bookkeeping returns the live store tables that hold no entity data.
func Bookkeeping() []Table {
	return []Table{
		{
			Name: LegacyImports,
			Columns: []Column{
				{Name: "id", Type: Text, PrimaryKey: true},
				{Name: "rows_written", Type: Integer},
				{Name: "completed_at", Type: Integer},
			},
		},
	}
}
