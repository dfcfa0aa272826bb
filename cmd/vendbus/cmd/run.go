package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/brianly1003/vendbus/internal/app"
	"github.com/brianly1003/vendbus/internal/config"
	"github.com/brianly1003/vendbus/internal/domain/events"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	runEvents    int
	runSeed      uint64
	runThreshold int
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the vending machine simulation",
	Long: `Run the vending machine simulation.

Machines are seeded from the configuration, then random sale and refill
events are published one at a time. After every event the stock level of
each machine is printed.

Example:
  vendbus run                      # 5 events over machines 001, 002, 003
  vendbus run --events 20
  vendbus run --seed 42            # Reproducible run
  vendbus run --threshold 5        # Warn when stock drops below 5`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&runEvents, "events", 0, "number of events to publish (default: simulation.events)")
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "random seed, 0 for a time-based seed (default: simulation.seed)")
	runCmd.Flags().IntVar(&runThreshold, "threshold", 0, "low stock threshold (default: stock.low_threshold)")
}

func runRun(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with flags
	applyRunFlags(cmd, cfg)

	// Re-validate after overrides
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Setup logging
	setupLogging(cfg)

	log.Info().
		Str("version", version).
		Strs("machines", cfg.Simulation.Machines).
		Int("events", cfg.Simulation.Events).
		Uint64("seed", cfg.Simulation.Seed).
		Msg("starting vendbus")

	out := cmd.OutOrStdout()

	// Create application
	application, err := app.New(cfg, version, out)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer application.Close()

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	fmt.Fprintln(out, "Initial stock:")
	application.ReportStock()

	summary, err := application.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation error: %w", err)
	}

	printSummary(out, summary)
	log.Info().Msg("vendbus stopped")
	return nil
}

// applyRunFlags copies explicitly set run flags onto cfg.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("events") {
		cfg.Simulation.Events = runEvents
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed = runSeed
	}
	if flags.Changed("threshold") {
		cfg.Stock.LowThreshold = runThreshold
	}
}

func printSummary(out io.Writer, summary *app.Summary) {
	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "  Run ID:    %s\n", summary.RunID)
	fmt.Fprintf(out, "  Published: %d\n", summary.Published)

	types := make([]string, 0, len(summary.Delivered))
	for t := range summary.Delivered {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(out, "  Delivered %-18s %d\n", t+":", summary.Delivered[events.EventType(t)])
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

func setupLogging(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set output format
	if cfg.Logging.Format == "console" || verbose {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Add verbose logging if flag is set
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
