package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/brianly1003/vendbus/internal/domain"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:    "valid config",
			mutate:  func(cfg *Config) {},
			wantErr: "",
		},
		{
			name:    "no machines",
			mutate:  func(cfg *Config) { cfg.Simulation.Machines = nil },
			wantErr: "at least one machine is required",
		},
		{
			name:    "empty machine id",
			mutate:  func(cfg *Config) { cfg.Simulation.Machines = []string{"001", ""} },
			wantErr: "machine id cannot be empty",
		},
		{
			name:    "duplicate machine id",
			mutate:  func(cfg *Config) { cfg.Simulation.Machines = []string{"001", "001"} },
			wantErr: `duplicate machine id "001"`,
		},
		{
			name:    "negative initial stock",
			mutate:  func(cfg *Config) { cfg.Simulation.InitialStock = -1 },
			wantErr: "simulation.initial_stock: cannot be negative",
		},
		{
			name:    "zero initial stock allowed",
			mutate:  func(cfg *Config) { cfg.Simulation.InitialStock = 0 },
			wantErr: "",
		},
		{
			name:    "negative events",
			mutate:  func(cfg *Config) { cfg.Simulation.Events = -1 },
			wantErr: "simulation.events: cannot be negative",
		},
		{
			name:    "too many events",
			mutate:  func(cfg *Config) { cfg.Simulation.Events = 10001 },
			wantErr: "cannot exceed 10000",
		},
		{
			name:    "zero threshold",
			mutate:  func(cfg *Config) { cfg.Stock.LowThreshold = 0 },
			wantErr: "stock.low_threshold: must be at least 1",
		},
		{
			name:    "unknown log level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "verbose" },
			wantErr: `unknown level "verbose"`,
		},
		{
			name:    "unknown log format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "xml" },
			wantErr: `unknown format "xml"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("Validate() error = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want error containing %q", err.Error(), tt.wantErr)
			}

			var validationErr *domain.ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("Validate() error should be a *domain.ValidationError, got %T", err)
			}
		})
	}
}
