// Package domain contains domain errors used throughout the application.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	ErrUnknownMachine   = errors.New("unknown machine")
	ErrDuplicateMachine = errors.New("duplicate machine")
	ErrInvalidQuantity  = errors.New("invalid quantity: must be greater than zero")
	ErrEmptyMachineID   = errors.New("machine id cannot be empty")
	ErrEmptyEventType   = errors.New("event type cannot be empty")
	ErrNilSubscriber    = errors.New("subscriber cannot be nil")

	ErrNonPointerSubscriber = errors.New("subscriber must be a pointer")
)

// MachineError represents a failed operation against a tracked machine.
type MachineError struct {
	Op        string // Operation that failed
	MachineID string // Machine the operation addressed
	Err       error  // Underlying error
}

func (e *MachineError) Error() string {
	return fmt.Sprintf("machine %s %q: %v", e.Op, e.MachineID, e.Err)
}

func (e *MachineError) Unwrap() error {
	return e.Err
}

// NewMachineError creates a new MachineError.
func NewMachineError(op, machineID string, err error) *MachineError {
	return &MachineError{
		Op:        op,
		MachineID: machineID,
		Err:       err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
