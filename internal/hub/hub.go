// Package hub implements the central event hub for vendbus.
package hub

import (
	"reflect"
	"sort"

	"github.com/brianly1003/vendbus/internal/domain"
	"github.com/brianly1003/vendbus/internal/domain/events"
	"github.com/brianly1003/vendbus/internal/domain/ports"
	"github.com/brianly1003/vendbus/internal/sync"
	"github.com/rs/zerolog/log"
)

// Hub is the central event dispatcher that fans out events to the
// subscribers registered for each event type.
//
// Delivery is synchronous: Publish calls every subscriber on the caller's
// goroutine before returning. Handlers may publish, subscribe or unsubscribe
// re-entrantly; no lock is held while a handler runs.
type Hub struct {
	// subscribers maps each event type to its set of subscribers.
	// A key stays in the map after its last subscriber is removed.
	subscribers map[events.EventType]map[ports.Subscriber]struct{}

	// mu protects subscribers
	mu sync.RWMutex
}

// New creates a new Hub.
func New() *Hub {
	return &Hub{
		subscribers: make(map[events.EventType]map[ports.Subscriber]struct{}),
	}
}

// Publish delivers event to every subscriber currently registered for its
// type. Publishing a type with no subscribers is a no-op.
func (h *Hub) Publish(event events.Event) {
	if event == nil {
		log.Warn().Msg("publish: nil event ignored")
		return
	}

	targets := h.snapshot(event.Type())

	log.Trace().
		Str("event_type", string(event.Type())).
		Str("machine_id", event.SubjectID()).
		Int("subscriber_count", len(targets)).
		Msg("event published")

	for _, sub := range targets {
		sub.Handle(event)
	}
}

// snapshot copies the subscriber set for eventType so that handlers can
// modify the registry while the publish is in progress.
func (h *Hub) snapshot(eventType events.EventType) []ports.Subscriber {
	h.mu.RLock()
	defer h.mu.RUnlock()

	set := h.subscribers[eventType]
	if len(set) == 0 {
		return nil
	}

	targets := make([]ports.Subscriber, 0, len(set))
	for sub := range set {
		targets = append(targets, sub)
	}
	return targets
}

// checkRegistration reports why eventType and sub cannot be registered.
// Subscribers are keyed by identity, so only non-nil pointers are accepted.
func checkRegistration(eventType events.EventType, sub ports.Subscriber) error {
	if eventType == "" {
		return domain.ErrEmptyEventType
	}
	return checkSubscriber(sub)
}

func checkSubscriber(sub ports.Subscriber) error {
	if sub == nil {
		return domain.ErrNilSubscriber
	}
	v := reflect.ValueOf(sub)
	if v.Kind() != reflect.Pointer {
		return domain.ErrNonPointerSubscriber
	}
	if v.IsNil() {
		return domain.ErrNilSubscriber
	}
	return nil
}

// Subscribe registers sub for eventType. Subscribing the same subscriber
// twice leaves one registration.
func (h *Hub) Subscribe(eventType events.EventType, sub ports.Subscriber) {
	if err := checkRegistration(eventType, sub); err != nil {
		log.Warn().
			Err(err).
			Str("event_type", string(eventType)).
			Msg("subscribe: invalid registration ignored")
		return
	}

	h.mu.Lock()
	set, ok := h.subscribers[eventType]
	if !ok {
		set = make(map[ports.Subscriber]struct{})
		h.subscribers[eventType] = set
	}
	set[sub] = struct{}{}
	count := len(set)
	h.mu.Unlock()

	log.Debug().
		Str("event_type", string(eventType)).
		Int("subscriber_count", count).
		Msg("subscriber registered")
}

// Unsubscribe removes sub from eventType. An unknown event type and an
// unknown subscriber are both no-ops.
func (h *Hub) Unsubscribe(eventType events.EventType, sub ports.Subscriber) {
	found := false
	if checkSubscriber(sub) == nil {
		h.mu.Lock()
		set := h.subscribers[eventType]
		_, found = set[sub]
		if found {
			delete(set, sub)
		}
		h.mu.Unlock()
	}

	if !found {
		log.Debug().
			Str("event_type", string(eventType)).
			Msg("unsubscribe: no matching registration")
		return
	}

	log.Debug().
		Str("event_type", string(eventType)).
		Msg("subscriber unregistered")
}

// SubscriberCount returns the number of subscribers for eventType.
func (h *Hub) SubscriberCount(eventType events.EventType) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[eventType])
}

// HasEventType reports whether eventType has ever had a subscriber.
func (h *Hub) HasEventType(eventType events.EventType) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.subscribers[eventType]
	return ok
}

// EventTypes returns every event type that has ever had a subscriber, sorted.
func (h *Hub) EventTypes() []events.EventType {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]events.EventType, 0, len(h.subscribers))
	for t := range h.subscribers {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Ensure Hub implements ports.EventBus.
var _ ports.EventBus = (*Hub)(nil)
