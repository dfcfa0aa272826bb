package ports

// MachineStore gives consumers borrowed access to tracked machines.
type MachineStore interface {
	// StockLevel returns the current stock level of the machine with the given ID.
	StockLevel(id string) (int, bool)

	// Adjust adds delta to the machine's stock level and returns the new level.
	Adjust(id string, delta int) (int, error)
}
