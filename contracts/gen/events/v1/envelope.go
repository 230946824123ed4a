package v1

import (
	"encoding/json"
	"time"
)

// Envelope wraps every outbox event the platform publishes. Consumers key
// partitioning on PartitionKey and dispatch on EventType; Data stays opaque
// until the event-specific payload is decoded. Fields are append-only once a
// schema version ships.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	SourceService string          `json:"source_service"`
	SchemaVersion int             `json:"schema_version"`
	PartitionKey  string          `json:"partition_key"`
	Data          json.RawMessage `json:"data"`
}
