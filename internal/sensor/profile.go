package sensor

import (
	"fmt"
	"math"
	"sort"

	"github.com/wbusacker/robot-gnc/internal/simerr"
)

// Gravity is the conversion from g to m/s² used by the accelerometer datasheet.
const Gravity = 9.8

// LIS344ALH datasheet figures used to size the band-limited profile.
const (
	noiseDensityG   = 50e-6 // g/√Hz
	bandLimitedHz   = 100   // output filter bandwidth
	brickWallFactor = 1.6   // single-pole to equivalent noise bandwidth
)

// NoiseProfile lists the independent gaussian sources added to each reading.
// Sources are drawn in order, one sample each per call.
type NoiseProfile struct {
	Name    string
	StdDevs []float64 // m/s², one entry per source
}

// Variance returns the aggregate variance of the profile in (m/s²)².
func (p NoiseProfile) Variance() float64 {
	var v float64
	for _, s := range p.StdDevs {
		v += s * s
	}
	return v
}

var (
	// WideBand is the analog part read at full bandwidth: a small bias wander
	// plus a large white-noise floor.
	WideBand = NoiseProfile{
		Name:    "wideband",
		StdDevs: []float64{0.00003 * Gravity, 0.1225},
	}

	// BandLimited is the same part behind a 100 Hz output filter: one source
	// with a much lower aggregate variance.
	BandLimited = NoiseProfile{
		Name:    "bandlimited",
		StdDevs: []float64{noiseDensityG * math.Sqrt(bandLimitedHz*brickWallFactor) * Gravity},
	}

	// Ideal adds no noise; runs using it are fully deterministic.
	Ideal = NoiseProfile{Name: "ideal"}
)

var profiles = map[string]NoiseProfile{
	WideBand.Name:    WideBand,
	BandLimited.Name: BandLimited,
	Ideal.Name:       Ideal,
}

// ProfileNames lists the registered profile names, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LookupProfile resolves a profile by name. An empty name selects WideBand.
func LookupProfile(name string) (NoiseProfile, error) {
	if name == "" {
		return WideBand, nil
	}
	p, ok := profiles[name]
	if !ok {
		return NoiseProfile{}, simerr.Configf("unknown sensor noise profile %q (known: %v)", name, ProfileNames())
	}
	return p, nil
}

func (p NoiseProfile) String() string {
	return fmt.Sprintf("%s%v", p.Name, p.StdDevs)
}
