package hub

import (
	"github.com/brianly1003/vendbus/internal/domain/events"
	"github.com/brianly1003/vendbus/internal/domain/ports"
)

// SubscriberFunc adapts a plain function to ports.Subscriber.
// Each *SubscriberFunc has its own identity, so the same function wrapped
// twice yields two independent registrations.
type SubscriberFunc struct {
	fn func(event events.Event)
}

// NewSubscriberFunc creates a subscriber that calls fn for each event.
func NewSubscriberFunc(fn func(event events.Event)) *SubscriberFunc {
	return &SubscriberFunc{fn: fn}
}

// Handle calls the wrapped function.
func (s *SubscriberFunc) Handle(event events.Event) {
	if s.fn != nil {
		s.fn(event)
	}
}

// SubscribeAll registers sub for every event type in the closed event set.
func SubscribeAll(bus ports.EventBus, sub ports.Subscriber) {
	for _, t := range events.AllEventTypes {
		bus.Subscribe(t, sub)
	}
}

// UnsubscribeAll removes sub from every event type in the closed event set.
func UnsubscribeAll(bus ports.EventBus, sub ports.Subscriber) {
	for _, t := range events.AllEventTypes {
		bus.Unsubscribe(t, sub)
	}
}

var _ ports.Subscriber = (*SubscriberFunc)(nil)
