package engine

import (
	"github.com/wbusacker/robot-gnc/internal/filter"
	"github.com/wbusacker/robot-gnc/internal/motor"
	"github.com/wbusacker/robot-gnc/internal/pid"
	"github.com/wbusacker/robot-gnc/internal/vehicle"
)

// Defaults applied to zero-valued inputs.
const (
	DefaultRunTime          = 360.0  // seconds
	DefaultSettleWindow     = 5.0    // seconds
	DefaultSettleTolerance  = 0.0001 // fraction of the target distance
	DefaultOpenLoopVelNoise = 0.01   // m/s
)

// Mode selects how the vehicle decides what to command.
type Mode string

const (
	// ModeClosedLoop drives from the integrated accelerometer estimate.
	ModeClosedLoop Mode = "closed_loop"
	// ModeOpenLoop drives forward for a precomputed travel time and stops.
	ModeOpenLoop Mode = "open_loop"
)

// SimulationMeta holds the identity and timing parameters for a simulation run.
type SimulationMeta struct {
	SimulationID string  `json:"simulation_id" yaml:"simulation_id"`
	TimeStep     float64 `json:"time_step" yaml:"time_step"` // seconds
	RunTime      float64 `json:"run_time" yaml:"run_time"`   // hard ceiling, seconds
	// Seed makes a run reproducible. When absent one is drawn and reported
	// back in the log's meta.
	Seed *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// MotorInput configures the drive motor.
type MotorInput struct {
	MaxRPM int `json:"max_rpm" yaml:"max_rpm"`
	// NoiseStdDevRPM defaults to motor.DefaultNoiseStdDevRPM when absent.
	NoiseStdDevRPM *float64 `json:"noise_std_dev_rpm,omitempty" yaml:"noise_std_dev_rpm,omitempty"`
	ApplyNoise     bool     `json:"apply_noise,omitempty" yaml:"apply_noise,omitempty"`
}

// SensorInput configures the accelerometer.
type SensorInput struct {
	Profile string `json:"profile,omitempty" yaml:"profile,omitempty"` // wideband, bandlimited, ideal
}

// ControllerInput configures the PID and the effort dead-band.
type ControllerInput struct {
	pid.Gains `yaml:",inline"`
	// DeadBand zeroes any effort whose magnitude is below it.
	DeadBand float64 `json:"dead_band,omitempty" yaml:"dead_band,omitempty"`
}

// SteadyStateInput configures the settle test.
type SteadyStateInput struct {
	Window    float64 `json:"window,omitempty" yaml:"window,omitempty"`       // seconds
	Tolerance float64 `json:"tolerance,omitempty" yaml:"tolerance,omitempty"` // fraction of target
}

// SimulationInput is the JSON/YAML-serialisable input to the engine.
type SimulationInput struct {
	Meta           SimulationMeta   `json:"simulation_meta" yaml:"simulation_meta"`
	Mode           Mode             `json:"mode,omitempty" yaml:"mode,omitempty"`
	TargetDistance float64          `json:"target_distance" yaml:"target_distance"` // metres
	Vehicle        vehicle.Geometry `json:"vehicle,omitempty" yaml:"vehicle,omitempty"`
	Motor          MotorInput       `json:"motor" yaml:"motor"`
	Sensor         SensorInput      `json:"sensor,omitempty" yaml:"sensor,omitempty"`
	Filter         filter.Params    `json:"filter,omitempty" yaml:"filter,omitempty"`
	Controller     ControllerInput  `json:"controller" yaml:"controller"`
	Steering       Steering         `json:"steering,omitempty" yaml:"steering,omitempty"`
	Drift          DriftMetric      `json:"drift,omitempty" yaml:"drift,omitempty"`
	SteadyState    SteadyStateInput `json:"steady_state,omitempty" yaml:"steady_state,omitempty"`
}

// Outcome is the state of the run's termination state machine.
type Outcome string

const (
	OutcomeRunning     Outcome = "running"
	OutcomeSteadyState Outcome = "steady_state"
	OutcomeTimedOut    Outcome = "timed_out"
)

// Terminal reports whether the run has stopped.
func (o Outcome) Terminal() bool {
	return o == OutcomeSteadyState || o == OutcomeTimedOut
}

// SimulationLogRow is the state of the vehicle at a single simulation tick.
type SimulationLogRow struct {
	Timestamp             float64         `json:"timestamp_s"`
	Target                float64         `json:"target_m"`
	EstimatedPosition     float64         `json:"estimated_position_m"`
	EstimatedVelocity     float64         `json:"estimated_velocity_mps"`
	EstimatedAcceleration float64         `json:"estimated_acceleration_mps2"`
	ActualPosition        float64         `json:"actual_position_m"`
	ControlEffort         float64         `json:"control_effort"`
	DriftPct              float64         `json:"drift_pct"`
	Direction             motor.Direction `json:"direction"`
}

// SimulationLog is the complete output of a simulation run.
type SimulationLog struct {
	Meta    SimulationMeta     `json:"simulation_meta"`
	Outcome Outcome            `json:"outcome"`
	Ticks   int                `json:"ticks"`
	Output  []SimulationLogRow `json:"output"`
}

// Final returns the last row of the log.
func (l SimulationLog) Final() SimulationLogRow {
	if len(l.Output) == 0 {
		return SimulationLogRow{}
	}
	return l.Output[len(l.Output)-1]
}
