// Package config handles configuration management for vendbus.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Stock      StockConfig      `mapstructure:"stock"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// SimulationConfig holds the parameters of a simulation run.
type SimulationConfig struct {
	Machines     []string `mapstructure:"machines"`
	InitialStock int      `mapstructure:"initial_stock"`
	Events       int      `mapstructure:"events"`
	Seed         uint64   `mapstructure:"seed"` // 0 selects a time-based seed
}

// StockConfig holds stock policy configuration.
type StockConfig struct {
	LowThreshold int `mapstructure:"low_threshold"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from files and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default search paths
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.vendbus")
		v.AddConfigPath("/etc/vendbus")
	}

	// Environment variable prefix
	v.SetEnvPrefix("VENDBUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file (optional - not an error if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	postProcess(&cfg)

	// Validate configuration
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the default configuration without reading files or environment.
func Default() *Config {
	machines := make([]string, len(DefaultMachineIDs))
	copy(machines, DefaultMachineIDs)

	return &Config{
		Simulation: SimulationConfig{
			Machines:     machines,
			InitialStock: DefaultInitialStock,
			Events:       DefaultEventCount,
		},
		Stock: StockConfig{
			LowThreshold: DefaultLowThreshold,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Simulation defaults
	v.SetDefault("simulation.machines", DefaultMachineIDs)
	v.SetDefault("simulation.initial_stock", DefaultInitialStock)
	v.SetDefault("simulation.events", DefaultEventCount)
	v.SetDefault("simulation.seed", 0)

	// Stock defaults
	v.SetDefault("stock.low_threshold", DefaultLowThreshold)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// postProcess normalizes loaded values.
func postProcess(cfg *Config) {
	// Env vars arrive as a single comma separated string
	if len(cfg.Simulation.Machines) == 1 && strings.Contains(cfg.Simulation.Machines[0], ",") {
		cfg.Simulation.Machines = strings.Split(cfg.Simulation.Machines[0], ",")
	}
	for i, id := range cfg.Simulation.Machines {
		cfg.Simulation.Machines[i] = strings.TrimSpace(id)
	}

	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
}

// GetConfigDir returns the user config directory for vendbus.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".vendbus"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
