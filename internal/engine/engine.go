// Package engine implements the dead-reckoning simulation loop.
//
// The simulation advances in fixed timesteps. In closed-loop mode each step:
//
//  1. Control - the PID turns the error between target and estimated
//     position into an effort, the dead-band may zero it, and the steering
//     policy picks a motor direction.
//
//  2. Actuation - the motor ramps in that direction and the true position
//     advances by the distance it covers.
//
//  3. Estimation - the accelerometer reads the true position, the filter
//     smooths the reading, and the result is integrated into the velocity and
//     position estimates.
//
// After recording the row, the termination test runs: once a full settle
// window has elapsed, a small enough spread of recent estimates ends the run
// in steady state; otherwise the hard ceiling ends it as timed out.
package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/wbusacker/robot-gnc/internal/filter"
	"github.com/wbusacker/robot-gnc/internal/monitoring"
	"github.com/wbusacker/robot-gnc/internal/motor"
	"github.com/wbusacker/robot-gnc/internal/pid"
	"github.com/wbusacker/robot-gnc/internal/sensor"
	"github.com/wbusacker/robot-gnc/internal/simerr"
	"github.com/wbusacker/robot-gnc/internal/vehicle"
)

// maxPreallocRows caps the rows reserved up front; longer runs grow by append.
const maxPreallocRows = 1 << 16

// pcgStream is the fixed PCG stream selector; the seed picks the sequence.
const pcgStream = 0xda3e39cb94b95bdb

// Sim is the state of one simulation run. It is not safe for concurrent use
// and cannot be restarted; build a new one per run.
type Sim struct {
	meta        SimulationMeta
	mode        Mode
	target      float64
	steering    Steering
	drift       DriftMetric
	deadBand    float64
	settle      float64 // seconds
	settleN     int     // samples in the settle window
	tolerance   float64 // fraction of target
	motor       motor.Actuator
	sensor      *sensor.Accelerometer
	filter      filter.Filter
	stages      string // sensor and filter, for logging
	controller  *pid.Controller
	history     *History
	outcome     Outcome
	tick        int
	openLoopVel float64 // m/s, open loop only
	travelTime  float64 // seconds, open loop only
}

// New validates input and builds a Sim. Every configuration problem is
// reported here, wrapped in simerr.ErrConfiguration; the loop never starts
// from a bad input.
func New(input SimulationInput) (*Sim, error) {
	input, err := withDefaults(input)
	if err != nil {
		return nil, err
	}
	meta := input.Meta
	dt := meta.TimeStep

	settleN := int(math.Round(input.SteadyState.Window / dt))
	if settleN < 1 {
		return nil, simerr.Configf("settle window %gs is shorter than one %gs tick", input.SteadyState.Window, dt)
	}

	geom, err := input.Vehicle.Resolve()
	if err != nil {
		return nil, fmt.Errorf("vehicle: %w", err)
	}

	src := rand.NewPCG(*meta.Seed, pcgStream)

	m, err := motor.NewDCMotor(dt, input.Motor.MaxRPM, geom, src, motor.Config{
		NoiseStdDevRPM: *input.Motor.NoiseStdDevRPM,
		ApplyNoise:     input.Motor.ApplyNoise,
	})
	if err != nil {
		return nil, fmt.Errorf("motor: %w", err)
	}

	profile, err := sensor.LookupProfile(input.Sensor.Profile)
	if err != nil {
		return nil, fmt.Errorf("sensor: %w", err)
	}
	accel, err := sensor.NewAccelerometer(dt, profile, src)
	if err != nil {
		return nil, fmt.Errorf("sensor: %w", err)
	}

	f, err := input.Filter.Build(dt)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	ctrl, err := pid.New(dt, input.Controller.Gains)
	if err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}

	s := &Sim{
		meta:       meta,
		mode:       input.Mode,
		target:     input.TargetDistance,
		steering:   input.Steering,
		drift:      input.Drift,
		deadBand:   input.Controller.DeadBand,
		settle:     input.SteadyState.Window,
		settleN:    settleN,
		tolerance:  input.SteadyState.Tolerance,
		motor:      m,
		sensor:     accel,
		filter:     f,
		stages:     fmt.Sprintf("sensor %s, filter %s", profile.Name, input.Filter),
		controller: ctrl,
		history:    newHistory(input.TargetDistance, min(int(meta.RunTime/dt)+2, maxPreallocRows)),
		outcome:    OutcomeRunning,
	}

	if s.mode == ModeOpenLoop {
		if err := s.planOpenLoop(float64(input.Motor.MaxRPM), geom, src); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// withDefaults fills zero-valued optional fields and validates the rest of
// the scalar configuration.
func withDefaults(in SimulationInput) (SimulationInput, error) {
	if in.Meta.TimeStep <= 0 {
		return in, simerr.Configf("time step must be positive, got %g", in.Meta.TimeStep)
	}
	if in.Meta.RunTime == 0 {
		in.Meta.RunTime = DefaultRunTime
	}
	if in.Meta.RunTime < 0 {
		return in, simerr.Configf("run time must be positive, got %g", in.Meta.RunTime)
	}
	if in.Meta.SimulationID == "" {
		in.Meta.SimulationID = uuid.NewString()
	}
	if in.Meta.Seed == nil {
		seed := rand.Uint64()
		in.Meta.Seed = &seed
	}

	if in.Mode == "" {
		in.Mode = ModeClosedLoop
	}
	if in.Mode != ModeClosedLoop && in.Mode != ModeOpenLoop {
		return in, simerr.Configf("unknown mode %q", in.Mode)
	}
	if in.Steering == "" {
		in.Steering = SteerSign
	}
	if err := in.Steering.validate(); err != nil {
		return in, err
	}
	if in.Drift == "" {
		in.Drift = DriftEstimateVsActual
	}
	if err := in.Drift.validate(); err != nil {
		return in, err
	}

	if in.Controller.DeadBand < 0 {
		return in, simerr.Configf("dead-band must not be negative, got %g", in.Controller.DeadBand)
	}
	if in.Motor.NoiseStdDevRPM == nil {
		sd := motor.DefaultNoiseStdDevRPM
		in.Motor.NoiseStdDevRPM = &sd
	}

	if in.SteadyState.Window == 0 {
		in.SteadyState.Window = DefaultSettleWindow
	}
	if in.SteadyState.Window < 0 {
		return in, simerr.Configf("settle window must be positive, got %g", in.SteadyState.Window)
	}
	if in.SteadyState.Tolerance == 0 {
		in.SteadyState.Tolerance = DefaultSettleTolerance
	}
	if in.SteadyState.Tolerance < 0 {
		return in, simerr.Configf("settle tolerance must not be negative, got %g", in.SteadyState.Tolerance)
	}
	return in, nil
}

// Meta returns the run's meta with defaults resolved, including the seed.
func (s *Sim) Meta() SimulationMeta { return s.meta }

// Outcome returns the current state of the termination state machine.
func (s *Sim) Outcome() Outcome { return s.outcome }

// History returns the recorded columns. Callers must not modify them.
func (s *Sim) History() *History { return s.history }

// Run executes the full simulation and returns the log.
func (s *Sim) Run() (SimulationLog, error) {
	monitoring.Logf("simulation %s: %s run, seed %d, dt %gs, target %gm, %s",
		s.meta.SimulationID, s.mode, *s.meta.Seed, s.meta.TimeStep, s.target, s.stages)

	for !s.outcome.Terminal() {
		if err := s.step(); err != nil {
			return SimulationLog{}, err
		}
	}

	final := s.history.Last()
	monitoring.Logf("simulation %s: %s at t=%.2fs after %d ticks (estimate %.4fm, actual %.4fm)",
		s.meta.SimulationID, s.outcome, final.Timestamp, s.tick, final.EstimatedPosition, final.ActualPosition)

	return SimulationLog{
		Meta:    s.meta,
		Outcome: s.outcome,
		Ticks:   s.tick,
		Output:  s.history.Rows(),
	}, nil
}

// step advances the simulation by one timestep, records the row and updates
// the outcome. It is a no-op once the run is terminal.
func (s *Sim) step() error {
	if s.outcome.Terminal() {
		return nil
	}
	s.tick++
	now := float64(s.tick) * s.meta.TimeStep

	var (
		row SimulationLogRow
		err error
	)
	switch s.mode {
	case ModeOpenLoop:
		row, err = s.openLoopStep(now)
	default:
		row, err = s.closedLoopStep(now)
	}
	if err != nil {
		return &simerr.SimulationError{Tick: s.tick, Time: now, Err: err}
	}
	s.history.Append(row)
	s.checkTermination(now)
	return nil
}

// closedLoopStep runs control, actuation and estimation for the tick ending at now.
func (s *Sim) closedLoopStep(now float64) (SimulationLogRow, error) {
	dt := s.meta.TimeStep
	prev := s.history.Last()

	effort := s.controller.Process(s.target - prev.EstimatedPosition)
	if math.Abs(effort) < s.deadBand {
		effort = 0
	}
	dir := s.steering.Direction(effort)

	dist, err := s.motor.Rotate(dir)
	if err != nil {
		return SimulationLogRow{}, fmt.Errorf("actuating %s: %w", dir, err)
	}
	actual := prev.ActualPosition + dist

	accel := s.filter.Apply(s.sensor.Sense(actual))
	vel := prev.EstimatedVelocity + accel*dt
	pos := prev.EstimatedPosition + vel*dt

	return SimulationLogRow{
		Timestamp:             now,
		Target:                s.target,
		EstimatedPosition:     pos,
		EstimatedVelocity:     vel,
		EstimatedAcceleration: accel,
		ActualPosition:        actual,
		ControlEffort:         effort,
		DriftPct:              s.drift.Percent(pos, actual),
		Direction:             dir,
	}, nil
}

// checkTermination applies the settle test, then the hard ceiling.
func (s *Sim) checkTermination(now float64) {
	if now >= s.settle {
		spread := stat.PopStdDev(s.history.TrailingPositions(s.settleN), nil)
		if spread < s.tolerance*math.Abs(s.target) {
			s.outcome = OutcomeSteadyState
			return
		}
	}
	if now >= s.meta.RunTime {
		s.outcome = OutcomeTimedOut
	}
}

// planOpenLoop fixes the believed cruise speed and the time to drive for.
// The speed is what a 0.01 m/s resolution measurement of the rated wheel
// speed would report, plus measurement noise.
func (s *Sim) planOpenLoop(maxRPM float64, geom vehicle.Geometry, src rand.Source) error {
	nominal := geom.LinearDistance(maxRPM / 60)
	measured := math.Trunc(nominal*100) / 100
	measured += distuv.Normal{Mu: 0, Sigma: DefaultOpenLoopVelNoise, Src: src}.Rand()
	if measured <= 0 {
		return simerr.Configf("open loop: measured cruise speed %g m/s is not positive", measured)
	}
	s.openLoopVel = measured
	s.travelTime = s.target / measured
	return nil
}

// TravelTime returns the open-loop drive time in seconds, or 0 in closed loop.
func (s *Sim) TravelTime() float64 { return s.travelTime }

// openLoopStep drives forward at full effort until the planned travel time is
// spent, then holds. The estimate only ever assumes the planned speed.
func (s *Sim) openLoopStep(now float64) (SimulationLogRow, error) {
	prev := s.history.Last()

	dir, effort, vel := motor.Hold, 0.0, 0.0
	if now <= s.travelTime {
		dir, effort, vel = motor.Forward, 1, s.openLoopVel
	}

	dist, err := s.motor.Rotate(dir)
	if err != nil {
		return SimulationLogRow{}, fmt.Errorf("actuating %s: %w", dir, err)
	}
	actual := prev.ActualPosition + dist
	pos := prev.EstimatedPosition + vel*s.meta.TimeStep

	return SimulationLogRow{
		Timestamp:         now,
		Target:            s.target,
		EstimatedPosition: pos,
		EstimatedVelocity: vel,
		ActualPosition:    actual,
		ControlEffort:     effort,
		DriftPct:          s.drift.Percent(pos, actual),
		Direction:         dir,
	}, nil
}

// Run builds and runs a simulation for input.
func Run(input SimulationInput) (SimulationLog, error) {
	sim, err := New(input)
	if err != nil {
		return SimulationLog{}, err
	}
	return sim.Run()
}

// RunJSON is the primary entry point shared by the CLI and WASM targets.
// It accepts a JSON-encoded SimulationInput, runs the simulation, and returns a
// JSON-encoded SimulationLog. Unknown fields are rejected.
func RunJSON(jsonInput string) (string, error) {
	var input SimulationInput
	dec := json.NewDecoder(strings.NewReader(jsonInput))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		return "", fmt.Errorf("%w: invalid input JSON: %v", simerr.ErrConfiguration, err)
	}

	simLog, err := Run(input)
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(simLog)
	if err != nil {
		return "", fmt.Errorf("marshaling output: %w", err)
	}
	return string(out), nil
}
