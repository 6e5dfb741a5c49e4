// Package kafka provides the conversion event publisher and the batch job
// queue on top of segmentio/kafka-go.
package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	// TopicConversionCompleted carries one audit event per successful
	// code-to-SMILES conversion.
	TopicConversionCompleted = "stilbar.conversion.completed"

	// TopicBatchJobs carries submitted batch conversion jobs for the
	// worker pool.
	TopicBatchJobs = "stilbar.batch.jobs"
)

// Event types.
const (
	EventTypeConversionCompleted = "conversion.completed"
	EventTypeBatchJobSubmitted   = "batch_job.submitted"
)

const schemaVersion = "1.0"

// EventEnvelope is the wire format shared by all published events.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	SchemaVersion string          `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope wraps a payload in a fresh envelope.
func NewEnvelope(eventType, source string, payload interface{}) (EventEnvelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return EventEnvelope{}, err
	}
	return EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: schemaVersion,
		Payload:       raw,
	}, nil
}
