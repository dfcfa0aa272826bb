package config

import (
	"fmt"
	"slices"

	"github.com/brianly1003/vendbus/internal/domain"
)

// Validate validates the configuration.
func Validate(cfg *Config) error {
	// Validate simulation config
	if err := validateSimulation(&cfg.Simulation); err != nil {
		return err
	}

	// Validate stock config
	if err := validateStock(&cfg.Stock); err != nil {
		return err
	}

	// Validate logging config
	if err := validateLogging(&cfg.Logging); err != nil {
		return err
	}

	return nil
}

func validateSimulation(cfg *SimulationConfig) error {
	if len(cfg.Machines) == 0 {
		return domain.NewValidationError("simulation.machines", "at least one machine is required")
	}

	seen := make(map[string]bool, len(cfg.Machines))
	for _, id := range cfg.Machines {
		if id == "" {
			return domain.NewValidationError("simulation.machines", "machine id cannot be empty")
		}
		if seen[id] {
			return domain.NewValidationError("simulation.machines", fmt.Sprintf("duplicate machine id %q", id))
		}
		seen[id] = true
	}

	if cfg.InitialStock < 0 {
		return domain.NewValidationError("simulation.initial_stock", "cannot be negative")
	}
	if cfg.Events < 0 {
		return domain.NewValidationError("simulation.events", "cannot be negative")
	}
	if cfg.Events > 10000 {
		return domain.NewValidationError("simulation.events", "cannot exceed 10000")
	}
	return nil
}

func validateStock(cfg *StockConfig) error {
	if cfg.LowThreshold < 1 {
		return domain.NewValidationError("stock.low_threshold", "must be at least 1")
	}
	return nil
}

func validateLogging(cfg *LoggingConfig) error {
	if !slices.Contains(ValidLogLevels, cfg.Level) {
		return domain.NewValidationError("logging.level", fmt.Sprintf("unknown level %q", cfg.Level))
	}
	if !slices.Contains(ValidLogFormats, cfg.Format) {
		return domain.NewValidationError("logging.format", fmt.Sprintf("unknown format %q", cfg.Format))
	}
	return nil
}
