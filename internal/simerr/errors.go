// Package simerr defines the error taxonomy shared by the simulation packages.
//
// Construction-time problems wrap ErrConfiguration and never reach the loop.
// Bad actuator commands wrap ErrInvalidCommand and abort the run they occur in;
// the engine reports them inside a SimulationError so callers know the tick.
package simerr

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks an input the simulation cannot be built from.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidCommand marks a direction the actuator does not recognise.
	ErrInvalidCommand = errors.New("invalid command")
)

// Configf returns an ErrConfiguration wrapped with a formatted reason.
func Configf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// SimulationError wraps a failure raised while the loop was running.
type SimulationError struct {
	Tick int
	Time float64 // seconds
	Err  error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d at t=%.2f: %v", e.Tick, e.Time, e.Err)
}

func (e *SimulationError) Unwrap() error {
	return e.Err
}
