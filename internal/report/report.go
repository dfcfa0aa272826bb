// Package report writes the human-readable simulation output.
package report

import (
	"fmt"
	"io"

	"github.com/brianly1003/vendbus/internal/domain/events"
	"github.com/brianly1003/vendbus/internal/machine"
	"github.com/brianly1003/vendbus/internal/sync"
)

// Reporter writes report lines to an output stream.
type Reporter struct {
	mu  sync.Mutex
	out io.Writer
}

// New creates a reporter writing to out.
func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// LowStock reports a low stock warning for a machine.
func (r *Reporter) LowStock(machineID string) {
	r.printf("Low stock warning for machine %s\n", machineID)
}

// StockOk reports that a machine's stock level is fine.
func (r *Reporter) StockOk(machineID string) {
	r.printf("Stock level OK for machine %s\n", machineID)
}

// UnknownMachine reports an event that referenced an untracked machine.
func (r *Reporter) UnknownMachine(machineID string) {
	r.printf("no matched machine with id: %s\n", machineID)
}

// Published reports an event handed to the hub.
func (r *Reporter) Published(seq int, event events.Event) {
	r.printf("event #%d %v\n", seq, event)
}

// StockLevels reports the stock level of every machine.
func (r *Reporter) StockLevels(machines []machine.Machine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range machines {
		fmt.Fprintf(r.out, "  Machine %s has stock level of %d\n", m.ID, m.StockLevel)
	}
}

func (r *Reporter) printf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}
