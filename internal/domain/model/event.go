package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Journal event kinds.
const (
	EventHTTPRequest       = "http.request"
	EventCheckoutSubmitted = "checkout.submitted"
	EventCheckoutSucceeded = "checkout.succeeded"
	EventCheckoutFailed    = "checkout.failed"
	EventCheckoutRejected  = "checkout.rejected"
	EventSessionStarted    = "simulator.session_started"
	EventSessionCompleted  = "simulator.session_completed"
	EventSessionStopped    = "simulator.session_stopped"
)

// Event is one journal record. HTTP requests fill the request fields;
// checkout and simulator events use OrderID, SessionID and Fields.
type Event struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Kind       string             `bson:"kind" json:"kind"`
	Level      string             `bson:"level" json:"level"`
	Message    string             `bson:"message" json:"message"`
	RequestID  string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string             `bson:"method,omitempty" json:"method,omitempty"`
	Path       string             `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64              `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string             `bson:"ip,omitempty" json:"ip,omitempty"`
	Error      string             `bson:"error,omitempty" json:"error,omitempty"`
	OrderID    string             `bson:"order_id,omitempty" json:"order_id,omitempty"`
	SessionID  uint64             `bson:"session_id,omitempty" json:"session_id,omitempty"`
	Fields     map[string]any     `bson:"fields,omitempty" json:"fields,omitempty"`
}

// Event levels.
const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// NewEvent creates an info-level event stamped with the current time.
func NewEvent(kind, message string) *Event {
	return &Event{
		Timestamp: time.Now(),
		Kind:      kind,
		Level:     LevelInfo,
		Message:   message,
	}
}

// WithLevel sets the event level.
func (e *Event) WithLevel(level string) *Event {
	e.Level = level
	return e
}

// WithField adds a field to the event's Fields map.
func (e *Event) WithField(key string, value any) *Event {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// WithFields merges fields into the event's Fields map.
func (e *Event) WithFields(fields map[string]any) *Event {
	if e.Fields == nil {
		e.Fields = make(map[string]any, len(fields))
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// EventQueryOptions filters journal queries.
type EventQueryOptions struct {
	Kind      string
	OrderID   string
	RequestID string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Skip      int
}
