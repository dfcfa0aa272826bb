// Package stock implements the event consumers that keep machine stock
// levels current and publish stock level events.
package stock

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/brianly1003/vendbus/internal/domain"
	"github.com/brianly1003/vendbus/internal/domain/events"
	"github.com/brianly1003/vendbus/internal/domain/ports"
)

// DefaultLowStockThreshold is the stock level below which a machine is low.
const DefaultLowStockThreshold = 3

// Notifier receives the observable outcomes of stock handling.
type Notifier interface {
	LowStock(machineID string)
	StockOk(machineID string)
	UnknownMachine(machineID string)
}

// LevelEvent returns the stock level event for a machine at stockLevel:
// low stock when strictly below threshold, ok otherwise.
func LevelEvent(machineID string, stockLevel, threshold int) events.Event {
	if IsLow(stockLevel, threshold) {
		return events.NewLowStockWarningEvent(machineID)
	}
	return events.NewStockLevelOkEvent(machineID)
}

// IsLow reports whether stockLevel is below threshold.
func IsLow(stockLevel, threshold int) bool {
	return stockLevel < threshold
}

// adjuster applies a stock delta to a machine and publishes the follow-up
// stock level event.
type adjuster struct {
	op        string
	publisher ports.Publisher
	store     ports.MachineStore
	notifier  Notifier
	threshold int
}

func newAdjuster(op string, publisher ports.Publisher, store ports.MachineStore, notifier Notifier, threshold int) adjuster {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return adjuster{
		op:        op,
		publisher: publisher,
		store:     store,
		notifier:  notifier,
		threshold: threshold,
	}
}

func (a adjuster) apply(machineID string, delta int) {
	level, err := a.store.Adjust(machineID, delta)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownMachine) {
			log.Warn().
				Str("op", a.op).
				Str("machine_id", machineID).
				Msg("event references unknown machine")
			a.notifier.UnknownMachine(machineID)
			return
		}
		log.Error().Err(err).Str("op", a.op).Str("machine_id", machineID).Msg("stock adjustment failed")
		return
	}

	log.Debug().
		Str("op", a.op).
		Str("machine_id", machineID).
		Int("delta", delta).
		Int("stock_level", level).
		Msg("stock adjusted")

	a.publisher.Publish(LevelEvent(machineID, level, a.threshold))
}

// SaleSubscriber decrements stock on sale events.
type SaleSubscriber struct {
	adjuster
}

// NewSaleSubscriber creates a sale subscriber. A threshold <= 0 selects
// DefaultLowStockThreshold.
func NewSaleSubscriber(publisher ports.Publisher, store ports.MachineStore, notifier Notifier, threshold int) *SaleSubscriber {
	return &SaleSubscriber{adjuster: newAdjuster("sale", publisher, store, notifier, threshold)}
}

// Handle processes a sale event.
func (s *SaleSubscriber) Handle(event events.Event) {
	sale, ok := event.(*events.SaleEvent)
	if !ok {
		log.Warn().Str("event_type", string(event.Type())).Msg("sale subscriber: unexpected event ignored")
		return
	}
	s.apply(sale.SubjectID(), -sale.Quantity())
}

// RefillSubscriber increments stock on refill events.
type RefillSubscriber struct {
	adjuster
}

// NewRefillSubscriber creates a refill subscriber. A threshold <= 0 selects
// DefaultLowStockThreshold.
func NewRefillSubscriber(publisher ports.Publisher, store ports.MachineStore, notifier Notifier, threshold int) *RefillSubscriber {
	return &RefillSubscriber{adjuster: newAdjuster("refill", publisher, store, notifier, threshold)}
}

// Handle processes a refill event.
func (s *RefillSubscriber) Handle(event events.Event) {
	refill, ok := event.(*events.RefillEvent)
	if !ok {
		log.Warn().Str("event_type", string(event.Type())).Msg("refill subscriber: unexpected event ignored")
		return
	}
	s.apply(refill.SubjectID(), refill.Quantity())
}

// WarningSubscriber reports stock level events. It never publishes.
type WarningSubscriber struct {
	notifier Notifier
}

// NewWarningSubscriber creates a warning subscriber.
func NewWarningSubscriber(notifier Notifier) *WarningSubscriber {
	return &WarningSubscriber{notifier: notifier}
}

// Handle processes low stock and stock ok events.
func (s *WarningSubscriber) Handle(event events.Event) {
	switch e := event.(type) {
	case *events.LowStockWarningEvent:
		log.Info().Str("machine_id", e.SubjectID()).Msg("low stock")
		s.notifier.LowStock(e.SubjectID())
	case *events.StockLevelOkEvent:
		log.Debug().Str("machine_id", e.SubjectID()).Msg("stock level ok")
		s.notifier.StockOk(e.SubjectID())
	default:
		log.Warn().Str("event_type", string(event.Type())).Msg("warning subscriber: unexpected event ignored")
	}
}

// Subscribers groups the stock consumers registered on a bus.
type Subscribers struct {
	Sale    *SaleSubscriber
	Refill  *RefillSubscriber
	Warning *WarningSubscriber
}

// Register creates the stock consumers and subscribes them to bus: sales and
// refills adjust store, and both stock level events go to the warning
// subscriber.
func Register(bus ports.EventBus, store ports.MachineStore, notifier Notifier, threshold int) *Subscribers {
	subs := &Subscribers{
		Sale:    NewSaleSubscriber(bus, store, notifier, threshold),
		Refill:  NewRefillSubscriber(bus, store, notifier, threshold),
		Warning: NewWarningSubscriber(notifier),
	}

	bus.Subscribe(events.EventTypeSale, subs.Sale)
	bus.Subscribe(events.EventTypeRefill, subs.Refill)
	bus.Subscribe(events.EventTypeLowStockWarning, subs.Warning)
	bus.Subscribe(events.EventTypeStockLevelOk, subs.Warning)
	return subs
}

// Unregister removes every consumer registered by Register.
func (s *Subscribers) Unregister(bus ports.EventBus) {
	bus.Unsubscribe(events.EventTypeSale, s.Sale)
	bus.Unsubscribe(events.EventTypeRefill, s.Refill)
	bus.Unsubscribe(events.EventTypeLowStockWarning, s.Warning)
	bus.Unsubscribe(events.EventTypeStockLevelOk, s.Warning)
}

var (
	_ ports.Subscriber = (*SaleSubscriber)(nil)
	_ ports.Subscriber = (*RefillSubscriber)(nil)
	_ ports.Subscriber = (*WarningSubscriber)(nil)
)
