// Package simulation produces the random machine activity that drives a run.
package simulation

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/brianly1003/vendbus/internal/domain/events"
)

// Quantities drawn by the generator.
var (
	SaleQuantities   = []int{1, 2}
	RefillQuantities = []int{3, 5}
)

// Generator creates random sale and refill events for a fixed set of machines.
// Half of the events are sales, half are refills.
type Generator struct {
	rng        *rand.Rand
	machineIDs []string
}

// NewGenerator creates a generator over machineIDs. A seed of 0 selects a
// time-based seed; any other value gives a reproducible sequence.
func NewGenerator(machineIDs []string, seed uint64) (*Generator, error) {
	if len(machineIDs) == 0 {
		return nil, errors.New("generator needs at least one machine")
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	ids := make([]string, len(machineIDs))
	copy(ids, machineIDs)

	return &Generator{
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		machineIDs: ids,
	}, nil
}

// Next returns the next random event.
func (g *Generator) Next() (events.Event, error) {
	machineID := g.machineIDs[g.rng.IntN(len(g.machineIDs))]

	if g.rng.Float64() < 0.5 {
		return events.NewSaleEvent(machineID, pick(g.rng, SaleQuantities))
	}
	return events.NewRefillEvent(machineID, pick(g.rng, RefillQuantities))
}

// Generate returns n random events.
func (g *Generator) Generate(n int) ([]events.Event, error) {
	result := make([]events.Event, 0, n)
	for i := 0; i < n; i++ {
		ev, err := g.Next()
		if err != nil {
			return nil, err
		}
		result = append(result, ev)
	}
	return result, nil
}

func pick(rng *rand.Rand, values []int) int {
	return values[rng.IntN(len(values))]
}
