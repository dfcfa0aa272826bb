// Package testutil provides shared test utilities and mocks for vendbus tests.
package testutil

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/brianly1003/vendbus/internal/domain/events"
	"github.com/brianly1003/vendbus/internal/domain/ports"
	"github.com/brianly1003/vendbus/internal/sync"
)

// MockSubscriber implements ports.Subscriber for testing.
type MockSubscriber struct {
	name       string
	events     []events.Event
	mu         sync.Mutex
	handleFunc func(events.Event)
}

// NewMockSubscriber creates a new mock subscriber. The name is only used in
// test failure messages.
func NewMockSubscriber(name string) *MockSubscriber {
	return &MockSubscriber{
		name:   name,
		events: make([]events.Event, 0),
	}
}

// Name returns the subscriber name.
func (m *MockSubscriber) Name() string {
	return m.name
}

// Handle records the event and then runs any configured handle function.
// The lock is released before the function runs so it may publish.
func (m *MockSubscriber) Handle(e events.Event) {
	m.mu.Lock()
	m.events = append(m.events, e)
	fn := m.handleFunc
	m.mu.Unlock()

	if fn != nil {
		fn(e)
	}
}

// SetHandleFunc sets a function to run after each event is recorded.
func (m *MockSubscriber) SetHandleFunc(fn func(events.Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handleFunc = fn
}

// Events returns all received events.
func (m *MockSubscriber) Events() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]events.Event, len(m.events))
	copy(result, m.events)
	return result
}

// EventCount returns the number of received events.
func (m *MockSubscriber) EventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// ClearEvents removes all recorded events.
func (m *MockSubscriber) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = m.events[:0]
}

// Ensure MockSubscriber implements ports.Subscriber.
var _ ports.Subscriber = (*MockSubscriber)(nil)

// MockPublisher implements ports.Publisher and records every published event
// without delivering it.
type MockPublisher struct {
	events []events.Event
	mu     sync.Mutex
}

// NewMockPublisher creates a new mock publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		events: make([]events.Event, 0),
	}
}

// Publish records the event.
func (m *MockPublisher) Publish(e events.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
}

// PublishedEvents returns all published events.
func (m *MockPublisher) PublishedEvents() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]events.Event, len(m.events))
	copy(result, m.events)
	return result
}

// PublishedTypes returns the type of every published event, in order.
func (m *MockPublisher) PublishedTypes() []events.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]events.EventType, len(m.events))
	for i, e := range m.events {
		result[i] = e.Type()
	}
	return result
}

// Ensure MockPublisher implements ports.Publisher.
var _ ports.Publisher = (*MockPublisher)(nil)

// CaptureLogs redirects the global zerolog logger into a buffer for the
// duration of the test.
func CaptureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()

	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}
