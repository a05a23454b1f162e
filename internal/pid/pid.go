// Package pid implements the position controller that closes the
// dead-reckoning loop.
package pid

import "github.com/wbusacker/robot-gnc/internal/simerr"

// IntegralGate is the error below which the integrator accumulates. The gate
// is one-sided: any negative error, however large, is integrated.
const IntegralGate = 1.0

// Gains are the controller coefficients.
type Gains struct {
	Kp float64 `json:"kp" yaml:"kp"`
	Ki float64 `json:"ki" yaml:"ki"`
	Kd float64 `json:"kd" yaml:"kd"`
}

// Controller is a discrete PID with a gated integrator. Its output is not
// saturated; the caller decides what an effort means for the actuator.
type Controller struct {
	Gains
	timeStep   float64 // seconds
	integrator float64
	prevErr    float64
	hasPrev    bool
}

// New builds a controller stepped every timeStep seconds.
func New(timeStep float64, g Gains) (*Controller, error) {
	if timeStep <= 0 {
		return nil, simerr.Configf("time step must be positive, got %g", timeStep)
	}
	return &Controller{Gains: g, timeStep: timeStep}, nil
}

// Process returns the control effort for the current error.
//
// The first call after construction or Reset only records the error, so it
// never carries a derivative term.
func (c *Controller) Process(err float64) float64 {
	effort := c.Kp * err

	if err < IntegralGate {
		c.integrator += err
		effort += c.Ki * c.timeStep * c.integrator
	}

	if c.hasPrev {
		effort += c.Kd * (err - c.prevErr) / c.timeStep
	}
	c.prevErr = err
	c.hasPrev = true

	return effort
}

// Integrator returns the accumulated error sum.
func (c *Controller) Integrator() float64 { return c.integrator }

// PreviousError returns the last processed error and whether one exists.
func (c *Controller) PreviousError() (float64, bool) { return c.prevErr, c.hasPrev }

// Reset clears the integrator and forgets the previous error.
func (c *Controller) Reset() {
	c.integrator = 0
	c.prevErr = 0
	c.hasPrev = false
}
