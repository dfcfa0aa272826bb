package stock_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brianly1003/vendbus/internal/domain/events"
	"github.com/brianly1003/vendbus/internal/hub"
	"github.com/brianly1003/vendbus/internal/machine"
	"github.com/brianly1003/vendbus/internal/report"
	"github.com/brianly1003/vendbus/internal/stock"
	"github.com/brianly1003/vendbus/internal/testutil"
)

type scenario struct {
	bus      *hub.Hub
	store    *machine.Store
	out      *bytes.Buffer
	observed *testutil.MockSubscriber
}

// newScenario wires three machines at initialStock to a fresh hub, with an
// extra observer on both stock level event types.
func newScenario(t *testing.T, initialStock int) *scenario {
	t.Helper()

	store, err := machine.NewStoreWith([]string{"001", "002", "003"}, initialStock)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	bus := hub.New()
	stock.Register(bus, store, report.New(out), stock.DefaultLowStockThreshold)

	observed := testutil.NewMockSubscriber("observer")
	bus.Subscribe(events.EventTypeLowStockWarning, observed)
	bus.Subscribe(events.EventTypeStockLevelOk, observed)

	return &scenario{bus: bus, store: store, out: out, observed: observed}
}

func (s *scenario) level(t *testing.T, id string) int {
	t.Helper()
	m, ok := s.store.Get(id)
	require.True(t, ok)
	return m.StockLevel
}

func (s *scenario) sale(t *testing.T, id string, qty int) {
	t.Helper()
	ev, err := events.NewSaleEvent(id, qty)
	require.NoError(t, err)
	s.bus.Publish(ev)
}

func (s *scenario) refill(t *testing.T, id string, qty int) {
	t.Helper()
	ev, err := events.NewRefillEvent(id, qty)
	require.NoError(t, err)
	s.bus.Publish(ev)
}

func (s *scenario) lowStockFor(id string) int {
	n := 0
	for _, e := range s.observed.Events() {
		if e.Type() == events.EventTypeLowStockWarning && e.SubjectID() == id {
			n++
		}
	}
	return n
}

func TestScenario_SingleSale(t *testing.T) {
	s := newScenario(t, 10)

	s.sale(t, "001", 2)

	require.Equal(t, 8, s.level(t, "001"))
	require.Equal(t, 10, s.level(t, "002"))
	require.Equal(t, 10, s.level(t, "003"))
	require.Equal(t, 0, s.lowStockFor("001"))
	require.Equal(t, "Stock level OK for machine 001\n", s.out.String())
}

func TestScenario_SalesCrossThreshold(t *testing.T) {
	s := newScenario(t, 10)

	for i := 0; i < 3; i++ {
		s.sale(t, "002", 2)
	}
	require.Equal(t, 4, s.level(t, "002"))
	require.Equal(t, 0, s.lowStockFor("002"))

	s.sale(t, "002", 2)
	require.Equal(t, 2, s.level(t, "002"))
	require.Equal(t, 1, s.lowStockFor("002"))
	require.Contains(t, s.out.String(), "Low stock warning for machine 002\n")
}

func TestScenario_RefillFromLow(t *testing.T) {
	s := newScenario(t, 10)

	// Machine 003 starts already low.
	_, err := s.store.Adjust("003", -9)
	require.NoError(t, err)
	require.Equal(t, 1, s.level(t, "003"))

	s.refill(t, "003", 5)

	require.Equal(t, 6, s.level(t, "003"))
	evts := s.observed.Events()
	require.Len(t, evts, 1)
	require.Equal(t, events.EventTypeStockLevelOk, evts[0].Type())
	require.Equal(t, "003", evts[0].SubjectID())
}

func TestScenario_UnknownMachine(t *testing.T) {
	s := newScenario(t, 10)

	s.sale(t, "999", 1)

	for _, m := range s.store.Snapshot() {
		require.Equal(t, 10, m.StockLevel, "machine %s", m.ID)
	}
	require.Equal(t, 0, s.observed.EventCount(), "no stock level event for an unknown machine")
	require.Equal(t, "no matched machine with id: 999\n", s.out.String())
}

func TestScenario_Unregister(t *testing.T) {
	store, err := machine.NewStoreWith([]string{"001"}, 10)
	require.NoError(t, err)

	bus := hub.New()
	subs := stock.Register(bus, store, report.New(&bytes.Buffer{}), 0)
	subs.Unregister(bus)

	ev, err := events.NewSaleEvent("001", 2)
	require.NoError(t, err)
	bus.Publish(ev)

	m, _ := store.Get("001")
	require.Equal(t, 10, m.StockLevel)
	for _, et := range events.AllEventTypes {
		require.Equal(t, 0, bus.SubscriberCount(et))
	}
}
