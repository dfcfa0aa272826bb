// Package ports defines the contracts between the event hub and its callers.
package ports

import (
	"github.com/brianly1003/vendbus/internal/domain/events"
)

// Subscriber reacts to events delivered by an EventBus.
//
// Subscribers are registered and removed by identity, so implementations
// should be pointer types.
type Subscriber interface {
	// Handle processes a delivered event. It runs on the publisher's
	// goroutine and may publish further events.
	Handle(event events.Event)
}

// Publisher publishes events to every subscriber of the event's type.
type Publisher interface {
	Publish(event events.Event)
}

// EventBus defines the contract for event distribution.
type EventBus interface {
	Publisher

	// Subscribe registers sub for eventType. Registering the same
	// subscriber twice leaves a single registration.
	Subscribe(eventType events.EventType, sub Subscriber)

	// Unsubscribe removes sub from eventType. Removing an absent
	// registration is a no-op.
	Unsubscribe(eventType events.EventType, sub Subscriber)

	// SubscriberCount returns the number of subscribers for eventType.
	SubscriberCount(eventType events.EventType) int
}
