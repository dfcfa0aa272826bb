// Package app orchestrates all components of vendbus.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/brianly1003/vendbus/internal/config"
	"github.com/brianly1003/vendbus/internal/domain/events"
	"github.com/brianly1003/vendbus/internal/hub"
	"github.com/brianly1003/vendbus/internal/machine"
	"github.com/brianly1003/vendbus/internal/report"
	"github.com/brianly1003/vendbus/internal/simulation"
	"github.com/brianly1003/vendbus/internal/stock"
	"github.com/brianly1003/vendbus/internal/sync"
)

// App is the main application struct that wires the simulation together.
type App struct {
	cfg     *config.Config
	version string

	// Core components
	hub         *hub.Hub
	store       *machine.Store
	reporter    *report.Reporter
	subscribers *stock.Subscribers
	generator   *simulation.Generator
	tracer      *hub.SubscriberFunc

	// Run info
	runID     string
	startTime time.Time

	// mu protects delivered and running
	mu        sync.Mutex
	delivered map[events.EventType]int
	running   bool
}

// Summary describes a finished run.
type Summary struct {
	RunID     string
	Published int
	Delivered map[events.EventType]int
	Machines  []machine.Machine
	Duration  time.Duration
}

// New creates a new App writing its report to out.
func New(cfg *config.Config, version string, out io.Writer) (*App, error) {
	store, err := machine.NewStoreWith(cfg.Simulation.Machines, cfg.Simulation.InitialStock)
	if err != nil {
		return nil, fmt.Errorf("failed to seed machines: %w", err)
	}

	generator, err := simulation.NewGenerator(cfg.Simulation.Machines, cfg.Simulation.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create event generator: %w", err)
	}

	a := &App{
		cfg:       cfg,
		version:   version,
		hub:       hub.New(),
		store:     store,
		reporter:  report.New(out),
		generator: generator,
		runID:     uuid.New().String(),
		delivered: make(map[events.EventType]int),
	}

	a.subscribers = stock.Register(a.hub, a.store, a.reporter, cfg.Stock.LowThreshold)

	// Trace every delivered event
	a.tracer = hub.NewSubscriberFunc(func(event events.Event) {
		a.mu.Lock()
		a.delivered[event.Type()]++
		a.mu.Unlock()

		log.Trace().
			Str("run_id", a.runID).
			Str("event_type", string(event.Type())).
			Str("machine_id", event.SubjectID()).
			Time("timestamp", event.Timestamp()).
			Msg("event delivered")
	})
	hub.SubscribeAll(a.hub, a.tracer)

	return a, nil
}

// Run generates the configured number of events, publishes them one at a
// time and reports machine stock after each publish.
func (a *App) Run(ctx context.Context) (*Summary, error) {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return nil, fmt.Errorf("simulation is already running")
	}
	a.running = true
	a.startTime = time.Now()
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.running = false
		a.mu.Unlock()
	}()

	batch, err := a.generator.Generate(a.cfg.Simulation.Events)
	if err != nil {
		return nil, fmt.Errorf("failed to generate events: %w", err)
	}

	log.Info().
		Str("run_id", a.runID).
		Int("machines", a.store.Len()).
		Int("events", len(batch)).
		Int("low_threshold", a.cfg.Stock.LowThreshold).
		Bool("deadlock_detection", sync.DetectionEnabled()).
		Msg("simulation started")

	published := 0
	for i, event := range batch {
		select {
		case <-ctx.Done():
			log.Info().Str("run_id", a.runID).Int("published", published).Msg("simulation cancelled")
			return a.summary(published), ctx.Err()
		default:
		}

		a.reporter.Published(i+1, event)
		a.hub.Publish(event)
		a.ReportStock()
		published++
	}

	summary := a.summary(published)
	log.Info().
		Str("run_id", a.runID).
		Int("published", summary.Published).
		Dur("duration", summary.Duration).
		Msg("simulation finished")

	return summary, nil
}

// Publish hands a single event to the hub and reports the resulting stock.
func (a *App) Publish(event events.Event) {
	a.hub.Publish(event)
	a.ReportStock()
}

// ReportStock writes the current stock level of every machine.
func (a *App) ReportStock() {
	a.reporter.StockLevels(a.store.Snapshot())
}

// Close unregisters every subscriber the app registered.
func (a *App) Close() {
	a.subscribers.Unregister(a.hub)
	hub.UnsubscribeAll(a.hub, a.tracer)
}

func (a *App) summary(published int) *Summary {
	a.mu.Lock()
	delivered := make(map[events.EventType]int, len(a.delivered))
	for t, n := range a.delivered {
		delivered[t] = n
	}
	a.mu.Unlock()

	return &Summary{
		RunID:     a.runID,
		Published: published,
		Delivered: delivered,
		Machines:  a.store.Snapshot(),
		Duration:  time.Since(a.startTime),
	}
}

// RunID returns the unique ID of this run.
func (a *App) RunID() string {
	return a.runID
}

// Version returns the application version.
func (a *App) Version() string {
	return a.version
}

// Store returns the machine store.
func (a *App) Store() *machine.Store {
	return a.store
}

// Hub returns the event hub.
func (a *App) Hub() *hub.Hub {
	return a.hub
}
