// Package motor models the drive motors of the robot: how a commanded
// direction turns into wheel travel over one simulation tick.
//
// The engine only depends on the Actuator contract; DCMotor is the
// ramp-limited brushed DC gearmotor model used by every preset.
package motor

import (
	"fmt"
	"strings"

	"github.com/wbusacker/robot-gnc/internal/simerr"
)

// Direction is the command handed to an Actuator each tick.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = 2
	Hold     Direction = 3
)

var directionNames = map[Direction]string{
	Forward:  "forward",
	Backward: "backward",
	Hold:     "hold",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Valid reports whether d is one of the three defined commands.
func (d Direction) Valid() bool {
	_, ok := directionNames[d]
	return ok
}

// ParseDirection maps a command name to its Direction. Names are case-insensitive.
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if strings.EqualFold(s, name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown direction %q", simerr.ErrInvalidCommand, s)
}

// MarshalText encodes the direction by name so logs read "forward" not 1.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %s", simerr.ErrInvalidCommand, d)
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Actuator is the contract every motor model satisfies.
type Actuator interface {
	// Rotate applies one tick of the commanded direction and returns the signed
	// linear distance travelled in metres.
	Rotate(d Direction) (float64, error)

	// RPM returns the motor speed the next tick starts from.
	RPM() float64
}
