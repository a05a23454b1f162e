// Package sensor models the single-axis accelerometer used for dead reckoning.
//
// The sensor never sees acceleration directly: it differentiates the true
// position twice across consecutive ticks and then adds the noise described
// by its NoiseProfile. Only the last position and velocity are kept.
package sensor

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/wbusacker/robot-gnc/internal/simerr"
)

// Accelerometer derives noisy acceleration readings from true positions.
type Accelerometer struct {
	timeStep     float64 // seconds
	lastPosition float64 // metres
	lastVelocity float64 // m/s
	profile      NoiseProfile
	sources      []distuv.Normal
}

// NewAccelerometer builds a sensor sampled every timeStep seconds. src drives
// the noise and is normally shared with the rest of the run.
func NewAccelerometer(timeStep float64, profile NoiseProfile, src rand.Source) (*Accelerometer, error) {
	if timeStep <= 0 {
		return nil, simerr.Configf("time step must be positive, got %g", timeStep)
	}
	sources := make([]distuv.Normal, len(profile.StdDevs))
	for i, sd := range profile.StdDevs {
		if sd < 0 {
			return nil, simerr.Configf("sensor profile %q: negative std-dev %g", profile.Name, sd)
		}
		sources[i] = distuv.Normal{Mu: 0, Sigma: sd, Src: src}
	}
	return &Accelerometer{
		timeStep: timeStep,
		profile:  profile,
		sources:  sources,
	}, nil
}

// Profile returns the noise profile the sensor was built with.
func (a *Accelerometer) Profile() NoiseProfile { return a.profile }

// Sense takes the true position for this tick and returns the measured
// acceleration. It must be called exactly once per tick.
func (a *Accelerometer) Sense(position float64) float64 {
	velocity := (position - a.lastPosition) / a.timeStep
	accel := (velocity - a.lastVelocity) / a.timeStep

	a.lastPosition = position
	a.lastVelocity = velocity

	for _, n := range a.sources {
		accel += n.Rand()
	}
	return accel
}
