// Package config provides centralized default configuration values.
package config

// DefaultMachineIDs are the machines seeded when none are configured.
var DefaultMachineIDs = []string{"001", "002", "003"}

const (
	DefaultInitialStock = 10
	DefaultEventCount   = 5
	DefaultLowThreshold = 3
)

// ValidLogLevels lists the accepted logging.level values.
var ValidLogLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}

// ValidLogFormats lists the accepted logging.format values.
var ValidLogFormats = []string{"console", "json"}

// DefaultConfigYAML is the commented template written by `vendbus config init`.
const DefaultConfigYAML = `# vendbus configuration
#
# Every value can be overridden with an environment variable, for example
# VENDBUS_SIMULATION_EVENTS=20 or VENDBUS_SIMULATION_MACHINES=001,002.

simulation:
  # Machines tracked by the simulation
  machines:
    - "001"
    - "002"
    - "003"
  # Stock level each machine starts with
  initial_stock: 10
  # Number of random events published per run
  events: 5
  # Random seed; 0 picks a new seed every run
  seed: 0

stock:
  # A machine whose stock drops below this level raises a low stock warning
  low_threshold: 3

logging:
  # trace, debug, info, warn, error
  level: info
  # console or json
  format: console
`
