package events

import (
	"fmt"

	"github.com/brianly1003/vendbus/internal/domain"
)

// --- Machine Activity Events ---

// SalePayload is the payload for sale events.
type SalePayload struct {
	Quantity int `json:"quantity"`
}

// SaleEvent reports units sold from a machine.
type SaleEvent struct {
	baseEvent
	quantity int
}

// NewSaleEvent creates a new sale event.
func NewSaleEvent(machineID string, quantity int) (*SaleEvent, error) {
	if err := validate(machineID, quantity); err != nil {
		return nil, fmt.Errorf("sale event: %w", err)
	}
	return &SaleEvent{
		baseEvent: newBaseEvent(EventTypeSale, machineID),
		quantity:  quantity,
	}, nil
}

// Quantity returns the number of units sold.
func (e *SaleEvent) Quantity() int {
	return e.quantity
}

// ToJSON serializes the event to JSON.
func (e *SaleEvent) ToJSON() ([]byte, error) {
	return e.marshal(SalePayload{Quantity: e.quantity})
}

func (e *SaleEvent) String() string {
	return fmt.Sprintf("%s{machine=%s quantity=%d}", e.eventType, e.machineID, e.quantity)
}

// RefillPayload is the payload for machine_refill events.
type RefillPayload struct {
	Quantity int `json:"quantity"`
}

// RefillEvent reports units added to a machine.
type RefillEvent struct {
	baseEvent
	quantity int
}

// NewRefillEvent creates a new machine_refill event.
func NewRefillEvent(machineID string, quantity int) (*RefillEvent, error) {
	if err := validate(machineID, quantity); err != nil {
		return nil, fmt.Errorf("refill event: %w", err)
	}
	return &RefillEvent{
		baseEvent: newBaseEvent(EventTypeRefill, machineID),
		quantity:  quantity,
	}, nil
}

// Quantity returns the number of units added.
func (e *RefillEvent) Quantity() int {
	return e.quantity
}

// ToJSON serializes the event to JSON.
func (e *RefillEvent) ToJSON() ([]byte, error) {
	return e.marshal(RefillPayload{Quantity: e.quantity})
}

func (e *RefillEvent) String() string {
	return fmt.Sprintf("%s{machine=%s quantity=%d}", e.eventType, e.machineID, e.quantity)
}

// --- Stock Level Events ---

// LowStockWarningEvent signals a machine dropped below the low stock threshold.
type LowStockWarningEvent struct {
	baseEvent
}

// NewLowStockWarningEvent creates a new low_stock_warning event.
func NewLowStockWarningEvent(machineID string) *LowStockWarningEvent {
	return &LowStockWarningEvent{baseEvent: newBaseEvent(EventTypeLowStockWarning, machineID)}
}

// ToJSON serializes the event to JSON.
func (e *LowStockWarningEvent) ToJSON() ([]byte, error) {
	return e.marshal(nil)
}

func (e *LowStockWarningEvent) String() string {
	return fmt.Sprintf("%s{machine=%s}", e.eventType, e.machineID)
}

// StockLevelOkEvent signals a machine is at or above the low stock threshold.
type StockLevelOkEvent struct {
	baseEvent
}

// NewStockLevelOkEvent creates a new stock_level_ok event.
func NewStockLevelOkEvent(machineID string) *StockLevelOkEvent {
	return &StockLevelOkEvent{baseEvent: newBaseEvent(EventTypeStockLevelOk, machineID)}
}

// ToJSON serializes the event to JSON.
func (e *StockLevelOkEvent) ToJSON() ([]byte, error) {
	return e.marshal(nil)
}

func (e *StockLevelOkEvent) String() string {
	return fmt.Sprintf("%s{machine=%s}", e.eventType, e.machineID)
}

func validate(machineID string, quantity int) error {
	if machineID == "" {
		return domain.ErrEmptyMachineID
	}
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// Ensure every variant implements Event.
var (
	_ Event = (*SaleEvent)(nil)
	_ Event = (*RefillEvent)(nil)
	_ Event = (*LowStockWarningEvent)(nil)
	_ Event = (*StockLevelOkEvent)(nil)
)
