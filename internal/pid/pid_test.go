package pid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbusacker/robot-gnc/internal/simerr"
)

func newController(t *testing.T, dt float64, g Gains) *Controller {
	t.Helper()
	c, err := New(dt, g)
	require.NoError(t, err)
	return c
}

func TestFirstCallHasNoDerivative(t *testing.T) {
	c := newController(t, 0.1, Gains{Kp: 0.5, Ki: 0, Kd: 1000})

	assert.Equal(t, 5.0, c.Process(10))
	prev, ok := c.PreviousError()
	assert.True(t, ok)
	assert.Equal(t, 10.0, prev)
}

func TestFirstCallBelowGateIsProportionalPlusIntegral(t *testing.T) {
	c := newController(t, 0.1, Gains{Kp: 2, Ki: 3, Kd: 1000})
	// 2·0.5 + 3·0.1·0.5
	assert.InDelta(t, 1.15, c.Process(0.5), 1e-12)
}

func TestEqualErrorsGiveNoDerivative(t *testing.T) {
	c := newController(t, 0.01, Gains{Kp: 0.5, Ki: 0, Kd: 2})
	first := c.Process(3)
	second := c.Process(3)
	assert.Equal(t, first, second)
}

func TestDerivativeTerm(t *testing.T) {
	c := newController(t, 0.5, Gains{Kd: 2})
	c.Process(4)
	// 2·(3 − 4)/0.5
	assert.InDelta(t, -4.0, c.Process(3), 1e-12)
}

func TestIntegratorGateIsOneSided(t *testing.T) {
	c := newController(t, 0.1, Gains{Ki: 1})

	assert.Equal(t, 0.0, c.Process(1))
	assert.Equal(t, 0.0, c.Process(25))
	assert.Equal(t, 0.0, c.Integrator())

	// large negative errors still integrate
	assert.InDelta(t, -0.5, c.Process(-5), 1e-12)
	assert.Equal(t, 0.0, c.Process(1))
	assert.Equal(t, -5.0, c.Integrator())
	assert.InDelta(t, -0.45, c.Process(0.5), 1e-12)
}

func TestReset(t *testing.T) {
	c := newController(t, 0.1, Gains{Kp: 1, Ki: 1, Kd: 1})
	c.Process(0.2)
	c.Process(0.4)
	c.Reset()

	_, ok := c.PreviousError()
	assert.False(t, ok)
	assert.Equal(t, 0.0, c.Integrator())
	assert.InDelta(t, 0.2+0.1*0.2, c.Process(0.2), 1e-12)
}

func TestNewRejectsBadTimeStep(t *testing.T) {
	_, err := New(0, Gains{})
	assert.ErrorIs(t, err, simerr.ErrConfiguration)
}
