package simerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigfWrapsConfiguration(t *testing.T) {
	err := Configf("time step must be positive, got %g", -0.1)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "time step must be positive, got -0.1")
}

func TestSimulationErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("%w: direction 9", ErrInvalidCommand)
	var err error = &SimulationError{Tick: 12, Time: 1.2, Err: inner}

	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.False(t, errors.Is(err, ErrConfiguration))
	assert.Equal(t, "tick 12 at t=1.20: invalid command: direction 9", err.Error())
}
