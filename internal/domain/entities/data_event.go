package entities

import (
	"time"

	"github.com/google/uuid"
)

// DataEventType names a change to stored records.
type DataEventType string

const (
	DataEventHospitalRated      DataEventType = "hospital_rated"
	DataEventProviderRegistered DataEventType = "provider_registered"
	DataEventDataImported       DataEventType = "data_imported"
)

// DataEvent announces a change other processes may need to react to, such
// as dropping cached reads.
type DataEvent struct {
	ID        string                 `json:"id"`
	Type      DataEventType          `json:"type"`
	RecordID  string                 `json:"recordId,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// NewDataEvent creates a new data event
func NewDataEvent(eventType DataEventType, recordID string, details map[string]interface{}) *DataEvent {
	return &DataEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		RecordID:  recordID,
		Timestamp: time.Now().UTC(),
		Details:   details,
	}
}
