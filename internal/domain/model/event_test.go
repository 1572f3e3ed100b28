package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_WithField(t *testing.T) {
	tests := []struct {
		name   string
		event  *Event
		key    string
		value  any
		verify func(*testing.T, *Event)
	}{
		{
			name:  "nil fields are initialized",
			event: &Event{Kind: EventCheckoutSubmitted},
			key:   "item_count",
			value: 3,
			verify: func(t *testing.T, e *Event) {
				assert.Equal(t, 3, e.Fields["item_count"])
			},
		},
		{
			name:  "overwrite existing field",
			event: &Event{Fields: map[string]any{"total": "1.00"}},
			key:   "total",
			value: "10.78",
			verify: func(t *testing.T, e *Event) {
				assert.Equal(t, "10.78", e.Fields["total"])
				assert.Len(t, e.Fields, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.event.WithField(tt.key, tt.value)
			assert.Same(t, tt.event, result)
			tt.verify(t, result)
		})
	}
}

func TestEvent_WithFields(t *testing.T) {
	e := &Event{Fields: map[string]any{"existing": "value"}}

	e.WithFields(map[string]any{"order_id": "ICE-00000000", "items": 2})

	assert.Equal(t, "value", e.Fields["existing"])
	assert.Equal(t, "ICE-00000000", e.Fields["order_id"])
	assert.Equal(t, 2, e.Fields["items"])
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventSessionStarted, "Session started").WithLevel(LevelWarn)

	assert.Equal(t, EventSessionStarted, e.Kind)
	assert.Equal(t, "Session started", e.Message)
	assert.Equal(t, LevelWarn, e.Level)
	assert.False(t, e.Timestamp.IsZero())
	assert.True(t, e.ID.IsZero())
}
