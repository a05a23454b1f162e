package engine

import (
	"math"

	"github.com/wbusacker/robot-gnc/internal/motor"
	"github.com/wbusacker/robot-gnc/internal/simerr"
)

// Steering maps a control effort onto a motor direction.
type Steering string

const (
	// SteerSign drives forward on any non-negative effort and backward
	// otherwise. It never commands Hold.
	SteerSign Steering = "sign"
	// SteerDeadBand drives forward on positive effort, backward on negative
	// and holds on exactly zero, which the controller dead-band produces.
	SteerDeadBand Steering = "deadband"
)

func (s Steering) validate() error {
	switch s {
	case SteerSign, SteerDeadBand:
		return nil
	}
	return simerr.Configf("unknown steering policy %q", s)
}

// Direction returns the command for effort.
func (s Steering) Direction(effort float64) motor.Direction {
	if s == SteerDeadBand {
		switch {
		case effort > 0:
			return motor.Forward
		case effort < 0:
			return motor.Backward
		default:
			return motor.Hold
		}
	}
	if effort >= 0 {
		return motor.Forward
	}
	return motor.Backward
}

// DriftMetric names how the divergence between estimate and truth is expressed.
type DriftMetric string

const (
	// DriftEstimateVsActual is the signed error of the estimate relative to
	// the true position: (est − act) / act · 100.
	DriftEstimateVsActual DriftMetric = "estimate_vs_actual"
	// DriftActualVsEstimate is the magnitude of the true position's offset
	// relative to the estimate: |(act − est) / est| · 100.
	DriftActualVsEstimate DriftMetric = "actual_vs_estimate"
)

func (d DriftMetric) validate() error {
	switch d {
	case DriftEstimateVsActual, DriftActualVsEstimate:
		return nil
	}
	return simerr.Configf("unknown drift metric %q", d)
}

// Percent returns the drift in percent. A zero denominator yields 0.
func (d DriftMetric) Percent(estimated, actual float64) float64 {
	if d == DriftActualVsEstimate {
		if estimated == 0 {
			return 0
		}
		return math.Abs((actual - estimated) / estimated * 100)
	}
	if actual == 0 {
		return 0
	}
	return (estimated - actual) / actual * 100
}
