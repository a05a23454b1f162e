// Package vehicle defines the static parameters of the simulated robot: its
// wheels, drivetrain and mass. Geometry values are fixed once built and are
// consumed by the motor model.
package vehicle

import (
	"math"

	"github.com/wbusacker/robot-gnc/internal/simerr"
)

// DefaultMassKg is the mass of the reference robot.
const DefaultMassKg = 2.0

// Geometry holds the wheel and drivetrain constants of a vehicle.
// Build values with NewGeometry so Circumference is derived consistently.
type Geometry struct {
	WheelCount    int     `json:"wheel_count" yaml:"wheel_count"`
	GearRatio     float64 `json:"gear_ratio" yaml:"gear_ratio"` // motor turns per wheel turn
	RadiusM       float64 `json:"radius_m" yaml:"radius_m"`     // metres
	MassKg        float64 `json:"mass_kg" yaml:"mass_kg"`       // kilograms
	Circumference float64 `json:"-" yaml:"-"`                   // metres, 2πr
}

// Default is the four-wheel, direct-drive, 3 cm radius reference robot.
var Default = MustGeometry(4, 1, 0.03, DefaultMassKg)

// NewGeometry validates the constants and derives the wheel circumference.
func NewGeometry(wheelCount int, gearRatio, radiusM, massKg float64) (Geometry, error) {
	if wheelCount < 1 {
		return Geometry{}, simerr.Configf("wheel count must be at least 1, got %d", wheelCount)
	}
	if gearRatio <= 0 {
		return Geometry{}, simerr.Configf("gear ratio must be positive, got %g", gearRatio)
	}
	if radiusM <= 0 {
		return Geometry{}, simerr.Configf("wheel radius must be positive, got %g", radiusM)
	}
	if massKg <= 0 {
		return Geometry{}, simerr.Configf("vehicle mass must be positive, got %g", massKg)
	}
	return Geometry{
		WheelCount:    wheelCount,
		GearRatio:     gearRatio,
		RadiusM:       radiusM,
		MassKg:        massKg,
		Circumference: 2 * math.Pi * radiusM,
	}, nil
}

// MustGeometry is NewGeometry for compile-time constants; it panics on error.
func MustGeometry(wheelCount int, gearRatio, radiusM, massKg float64) Geometry {
	g, err := NewGeometry(wheelCount, gearRatio, radiusM, massKg)
	if err != nil {
		panic(err)
	}
	return g
}

// Resolve validates g and fills in the derived fields. A zero Geometry
// resolves to Default, which lets inputs omit the vehicle block entirely.
func (g Geometry) Resolve() (Geometry, error) {
	if g == (Geometry{}) {
		return Default, nil
	}
	return NewGeometry(g.WheelCount, g.GearRatio, g.RadiusM, g.MassKg)
}

// LinearDistance converts motor revolutions into metres travelled at the wheel.
func (g Geometry) LinearDistance(motorRevs float64) float64 {
	return motorRevs / g.GearRatio * g.Circumference
}

// MotorRevolutions converts metres travelled at the wheel into motor revolutions.
func (g Geometry) MotorRevolutions(distanceM float64) float64 {
	return distanceM / g.Circumference * g.GearRatio
}
