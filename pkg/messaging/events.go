package messaging

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types
const (
	EventAnalysisCompleted = "laudo.analysis.completed"
	EventAnalysisFailed    = "laudo.analysis.failed"
)

// Exchange names
const (
	ExchangeLaudoEvents = "laudo.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// AnalysisCompletedEvent is published after a document analysis finishes
// and a verdict is available.
type AnalysisCompletedEvent struct {
	SessionID      string `json:"session_id"`
	AnalysisID     string `json:"analysis_id"`
	DocumentType   string `json:"document_type"`
	Approved       bool   `json:"approved"`
	CriteriaFailed int    `json:"criteria_failed"`
	DurationMs     int64  `json:"duration_ms"`
}

// AnalysisFailedEvent is published when ingestion or OCR fails and no
// result is stored.
type AnalysisFailedEvent struct {
	SessionID string `json:"session_id"`
	Reason    string `json:"reason"`
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), time.Now().Nanosecond()%10000)
}
