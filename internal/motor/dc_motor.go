package motor

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/wbusacker/robot-gnc/internal/simerr"
	"github.com/wbusacker/robot-gnc/internal/vehicle"
)

// DefaultNoiseStdDevRPM is the actuator jitter applied to every tick.
const DefaultNoiseStdDevRPM = 1.0

// stallTorqueNm maps each supported no-load rating (rpm) to its stall torque.
var stallTorqueNm = map[int]float64{
	120: 1.67,
	160: 1.04,
	240: 0.70,
}

// SupportedRatings lists the max-rpm ratings DCMotor accepts, ascending.
func SupportedRatings() []int {
	ratings := make([]int, 0, len(stallTorqueNm))
	for r := range stallTorqueNm {
		ratings = append(ratings, r)
	}
	sort.Ints(ratings)
	return ratings
}

// StallTorque returns the stall torque in N·m for a max-rpm rating.
func StallTorque(maxRPM int) (float64, error) {
	torque, ok := stallTorqueNm[maxRPM]
	if !ok {
		return 0, simerr.Configf("unsupported motor rating %d rpm (supported: %v)", maxRPM, SupportedRatings())
	}
	return torque, nil
}

// RampLimit returns the largest rpm change the motor can make per tick.
//
// The stall torque is treated as ideally transferred to the ground through
// every wheel; the resulting uniform acceleration over one second gives a
// distance, which converted back to motor turns is the per-minute rate.
func RampLimit(stallTorque float64, g vehicle.Geometry) float64 {
	wheelForce := stallTorque * g.GearRatio / g.RadiusM
	vehicleForce := wheelForce * float64(g.WheelCount)
	accel := vehicleForce / g.MassKg
	traversed := 0.5 * accel
	return g.MotorRevolutions(traversed) * 60
}

// Config holds the tunables of a DCMotor beyond its rating.
type Config struct {
	// NoiseStdDevRPM is the standard deviation of the per-tick rpm jitter.
	NoiseStdDevRPM float64
	// ApplyNoise feeds the jittered rpm into the distance travelled. When
	// false the jitter is still drawn, keeping the random stream identical,
	// but the distance follows the commanded rpm.
	ApplyNoise bool
}

// DCMotor is a ramp-limited gearmotor that saturates at its rated speed.
type DCMotor struct {
	geom        vehicle.Geometry
	timeStep    float64 // seconds
	maxRPM      float64
	stallTorque float64 // N·m
	rampLimit   float64 // rpm per tick
	curRPM      float64
	applyNoise  bool
	noise       distuv.Normal
}

// NewDCMotor builds a motor for the given rating. src drives the jitter and is
// normally shared with the rest of the run.
func NewDCMotor(timeStep float64, maxRPM int, g vehicle.Geometry, src rand.Source, cfg Config) (*DCMotor, error) {
	if timeStep <= 0 {
		return nil, simerr.Configf("time step must be positive, got %g", timeStep)
	}
	torque, err := StallTorque(maxRPM)
	if err != nil {
		return nil, err
	}
	if cfg.NoiseStdDevRPM < 0 {
		return nil, simerr.Configf("motor noise std-dev must not be negative, got %g", cfg.NoiseStdDevRPM)
	}
	return &DCMotor{
		geom:        g,
		timeStep:    timeStep,
		maxRPM:      float64(maxRPM),
		stallTorque: torque,
		rampLimit:   RampLimit(torque, g),
		applyNoise:  cfg.ApplyNoise,
		noise:       distuv.Normal{Mu: 0, Sigma: cfg.NoiseStdDevRPM, Src: src},
	}, nil
}

func (m *DCMotor) RPM() float64 { return m.curRPM }

// RampLimit returns the rpm change available per tick.
func (m *DCMotor) RampLimit() float64 { return m.rampLimit }

// MaxRPM returns the saturation speed.
func (m *DCMotor) MaxRPM() float64 { return m.maxRPM }

// StallTorque returns the rated stall torque in N·m.
func (m *DCMotor) StallTorque() float64 { return m.stallTorque }

// Rotate ramps the motor in direction d and returns the distance covered.
//
// Hold brakes toward zero by one ramp step while the speed is above the ramp
// limit; inside that band the motor stops dead and no jitter is drawn.
func (m *DCMotor) Rotate(d Direction) (float64, error) {
	switch d {
	case Forward:
		m.rampUp()
	case Backward:
		m.rampDown()
	case Hold:
		switch {
		case m.curRPM > m.rampLimit:
			m.rampDown()
		case m.curRPM < -m.rampLimit:
			m.rampUp()
		default:
			m.curRPM = 0
			return 0, nil
		}
	default:
		return 0, fmt.Errorf("%w: motor cannot rotate %s", simerr.ErrInvalidCommand, d)
	}

	rpm := m.curRPM
	jittered := rpm + m.noise.Rand()
	if m.applyNoise {
		rpm = jittered
	}

	revs := rpm / 60 * m.timeStep
	return m.geom.LinearDistance(revs), nil
}

func (m *DCMotor) rampUp() {
	if m.curRPM < m.maxRPM {
		m.curRPM = min(m.curRPM+m.rampLimit, m.maxRPM)
	}
}

func (m *DCMotor) rampDown() {
	if m.curRPM > -m.maxRPM {
		m.curRPM = max(m.curRPM-m.rampLimit, -m.maxRPM)
	}
}
