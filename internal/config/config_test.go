package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoad_Defaults(t *testing.T) {
	// Run from an empty directory so no ./config.yaml is picked up
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Simulation.Machines) != 3 {
		t.Fatalf("default Machines = %v, want 3 machines", cfg.Simulation.Machines)
	}
	for i, want := range []string{"001", "002", "003"} {
		if cfg.Simulation.Machines[i] != want {
			t.Errorf("Machines[%d] = %s, want %s", i, cfg.Simulation.Machines[i], want)
		}
	}
	if cfg.Simulation.InitialStock != 10 {
		t.Errorf("default InitialStock = %d, want 10", cfg.Simulation.InitialStock)
	}
	if cfg.Simulation.Events != 5 {
		t.Errorf("default Events = %d, want 5", cfg.Simulation.Events)
	}
	if cfg.Simulation.Seed != 0 {
		t.Errorf("default Seed = %d, want 0", cfg.Simulation.Seed)
	}
	if cfg.Stock.LowThreshold != 3 {
		t.Errorf("default LowThreshold = %d, want 3", cfg.Stock.LowThreshold)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default Logging.Level = %s, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("default Logging.Format = %s, want console", cfg.Logging.Format)
	}
}

func TestLoad_FromFile(t *testing.T) {
	tempDir := t.TempDir()

	configContent := `
simulation:
  machines: ["A1", "B2"]
  initial_stock: 4
  events: 12
  seed: 99

stock:
  low_threshold: 2

logging:
  level: DEBUG
  format: json
`
	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Simulation.Machines) != 2 || cfg.Simulation.Machines[1] != "B2" {
		t.Errorf("Machines = %v, want [A1 B2]", cfg.Simulation.Machines)
	}
	if cfg.Simulation.InitialStock != 4 {
		t.Errorf("InitialStock = %d, want 4", cfg.Simulation.InitialStock)
	}
	if cfg.Simulation.Events != 12 {
		t.Errorf("Events = %d, want 12", cfg.Simulation.Events)
	}
	if cfg.Simulation.Seed != 99 {
		t.Errorf("Seed = %d, want 99", cfg.Simulation.Seed)
	}
	if cfg.Stock.LowThreshold != 2 {
		t.Errorf("LowThreshold = %d, want 2", cfg.Stock.LowThreshold)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug (lower-cased)", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %s, want json", cfg.Logging.Format)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("simulation: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestLoad_FailsValidation(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("stock:\n  low_threshold: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load() should reject low_threshold 0")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VENDBUS_SIMULATION_EVENTS", "20")
	t.Setenv("VENDBUS_SIMULATION_MACHINES", "x1, x2")
	t.Setenv("VENDBUS_STOCK_LOW_THRESHOLD", "5")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Simulation.Events != 20 {
		t.Errorf("Events = %d, want 20", cfg.Simulation.Events)
	}
	if len(cfg.Simulation.Machines) != 2 || cfg.Simulation.Machines[0] != "x1" || cfg.Simulation.Machines[1] != "x2" {
		t.Errorf("Machines = %q, want [x1 x2]", cfg.Simulation.Machines)
	}
	if cfg.Stock.LowThreshold != 5 {
		t.Errorf("LowThreshold = %d, want 5", cfg.Stock.LowThreshold)
	}
}

func TestDefault_MatchesLoadDefaults(t *testing.T) {
	cfg := Default()

	if err := Validate(cfg); err != nil {
		t.Fatalf("Default() should validate, got %v", err)
	}

	// Mutating the returned config must not touch the package defaults
	cfg.Simulation.Machines[0] = "changed"
	if DefaultMachineIDs[0] != "001" {
		t.Error("Default() must copy DefaultMachineIDs")
	}
}

func TestDefaultConfigYAML_Parses(t *testing.T) {
	var data struct {
		Simulation struct {
			Machines     []string `yaml:"machines"`
			InitialStock int      `yaml:"initial_stock"`
			Events       int      `yaml:"events"`
		} `yaml:"simulation"`
		Stock struct {
			LowThreshold int `yaml:"low_threshold"`
		} `yaml:"stock"`
	}

	if err := yaml.Unmarshal([]byte(DefaultConfigYAML), &data); err != nil {
		t.Fatalf("template is not valid YAML: %v", err)
	}
	if len(data.Simulation.Machines) != len(DefaultMachineIDs) {
		t.Errorf("template machines = %v, want %v", data.Simulation.Machines, DefaultMachineIDs)
	}
	if data.Simulation.InitialStock != DefaultInitialStock {
		t.Errorf("template initial_stock = %d, want %d", data.Simulation.InitialStock, DefaultInitialStock)
	}
	if data.Simulation.Events != DefaultEventCount {
		t.Errorf("template events = %d, want %d", data.Simulation.Events, DefaultEventCount)
	}
	if data.Stock.LowThreshold != DefaultLowThreshold {
		t.Errorf("template low_threshold = %d, want %d", data.Stock.LowThreshold, DefaultLowThreshold)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}
	if dir != filepath.Join(home, ".vendbus") {
		t.Errorf("dir = %s, want %s", dir, filepath.Join(home, ".vendbus"))
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("config dir was not created: %v", err)
	}
}
