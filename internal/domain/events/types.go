// Package events defines all event types used in vendbus.
package events

import (
	"encoding/json"
	"time"
)

// EventType represents the type of event. It is the dispatch key used by the hub.
type EventType string

const (
	// Machine activity events
	EventTypeSale   EventType = "sale"
	EventTypeRefill EventType = "machine_refill"

	// Stock level events (published by the stock consumers)
	EventTypeLowStockWarning EventType = "low_stock_warning"
	EventTypeStockLevelOk    EventType = "stock_level_ok"
)

// AllEventTypes lists every event type in the closed event set.
var AllEventTypes = []EventType{
	EventTypeSale,
	EventTypeRefill,
	EventTypeLowStockWarning,
	EventTypeStockLevelOk,
}

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	for _, known := range AllEventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Event is the base interface for all events.
//
// The set of implementations is closed: only the variants declared in this
// package satisfy it.
type Event interface {
	// Type returns the event type.
	Type() EventType

	// SubjectID returns the ID of the machine the event concerns.
	SubjectID() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time

	// ToJSON serializes the event to JSON.
	ToJSON() ([]byte, error)

	event()
}

// baseEvent contains the fields shared by every variant. Fields are
// unexported so an event cannot change after construction.
type baseEvent struct {
	eventType EventType
	machineID string
	eventTime time.Time
}

func newBaseEvent(eventType EventType, machineID string) baseEvent {
	return baseEvent{
		eventType: eventType,
		machineID: machineID,
		eventTime: time.Now().UTC(),
	}
}

// Type returns the event type.
func (e baseEvent) Type() EventType {
	return e.eventType
}

// SubjectID returns the machine ID.
func (e baseEvent) SubjectID() string {
	return e.machineID
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.eventTime
}

func (baseEvent) event() {}

// envelope is the wire shape produced by ToJSON.
type envelope struct {
	EventType EventType   `json:"event"`
	EventTime time.Time   `json:"timestamp"`
	MachineID string      `json:"machine_id"`
	Payload   interface{} `json:"payload,omitempty"`
}

func (e baseEvent) marshal(payload interface{}) ([]byte, error) {
	return json.Marshal(envelope{
		EventType: e.eventType,
		EventTime: e.eventTime,
		MachineID: e.machineID,
		Payload:   payload,
	})
}
