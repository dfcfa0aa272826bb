// Package machine owns the tracked vending machines and their stock levels.
package machine

import (
	"sort"

	"github.com/brianly1003/vendbus/internal/domain"
	"github.com/brianly1003/vendbus/internal/sync"
)

// Machine is a vending machine and its current stock level.
type Machine struct {
	ID         string `json:"id"`
	StockLevel int    `json:"stock_level"`
}

// Store is the single owner of all tracked machines.
// Consumers address machines by ID and never hold copies they mutate.
type Store struct {
	mu       sync.RWMutex
	machines map[string]*Machine
	order    []string // insertion order, used for stable reporting
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		machines: make(map[string]*Machine),
	}
}

// NewStoreWith creates a store seeded with the given IDs, each at initialStock.
func NewStoreWith(ids []string, initialStock int) (*Store, error) {
	s := NewStore()
	for _, id := range ids {
		if err := s.Add(id, initialStock); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add starts tracking a machine.
func (s *Store) Add(id string, stockLevel int) error {
	if id == "" {
		return domain.ErrEmptyMachineID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.machines[id]; exists {
		return domain.NewMachineError("add", id, domain.ErrDuplicateMachine)
	}
	s.machines[id] = &Machine{ID: id, StockLevel: stockLevel}
	s.order = append(s.order, id)
	return nil
}

// Get returns a copy of the machine with the given ID.
func (s *Store) Get(id string) (Machine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.machines[id]
	if !ok {
		return Machine{}, false
	}
	return *m, true
}

// StockLevel returns the stock level of the machine with the given ID.
func (s *Store) StockLevel(id string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.machines[id]
	if !ok {
		return 0, false
	}
	return m.StockLevel, true
}

// Adjust adds delta to a machine's stock level and returns the new level.
// Stock is not clamped; a sale larger than the stock leaves it negative.
func (s *Store) Adjust(id string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.machines[id]
	if !ok {
		return 0, domain.NewMachineError("adjust", id, domain.ErrUnknownMachine)
	}
	m.StockLevel += delta
	return m.StockLevel, nil
}

// Snapshot returns copies of all machines in insertion order.
func (s *Store) Snapshot() []Machine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Machine, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.machines[id])
	}
	return result
}

// IDs returns the tracked machine IDs sorted lexically.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.machines))
	for id := range s.machines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of tracked machines.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.machines)
}
