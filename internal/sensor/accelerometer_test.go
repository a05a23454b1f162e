package sensor

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/wbusacker/robot-gnc/internal/simerr"
)

func newSensor(t *testing.T, dt float64, p NoiseProfile, seed uint64) *Accelerometer {
	t.Helper()
	a, err := NewAccelerometer(dt, p, rand.NewPCG(seed, seed+1))
	require.NoError(t, err)
	return a
}

func TestIdealSensorDifferentiatesTwice(t *testing.T) {
	dt := 0.1
	a := newSensor(t, dt, Ideal, 1)

	// constant 2 m/s² from rest: x = t²
	var prevV float64
	for i := 1; i <= 20; i++ {
		ti := float64(i) * dt
		x := ti * ti
		got := a.Sense(x)

		prevX := (ti - dt) * (ti - dt)
		v := (x - prevX) / dt
		want := (v - prevV) / dt
		prevV = v
		assert.InDelta(t, want, got, 1e-9, "tick %d", i)
		if i > 1 {
			assert.InDelta(t, 2.0, got, 1e-6, "tick %d", i)
		}
	}
}

func TestStateAdvancesWithNoiseFreeValues(t *testing.T) {
	dt := 0.5
	noisy := newSensor(t, dt, WideBand, 3)
	ideal := newSensor(t, dt, Ideal, 3)

	for _, x := range []float64{0.2, 0.7, 0.9, 0.9} {
		noisy.Sense(x)
		ideal.Sense(x)
	}
	assert.Equal(t, ideal.lastPosition, noisy.lastPosition)
	assert.Equal(t, ideal.lastVelocity, noisy.lastVelocity)
	assert.InDelta(t, 0.0, noisy.lastVelocity, 1e-12)
}

func TestNoiseProfilesMatchTheirVariance(t *testing.T) {
	for _, p := range []NoiseProfile{WideBand, BandLimited} {
		t.Run(p.Name, func(t *testing.T) {
			a := newSensor(t, 0.01, p, 11)
			readings := make([]float64, 20000)
			for i := range readings {
				readings[i] = a.Sense(0)
			}
			sd := stat.StdDev(readings, nil)
			assert.InEpsilon(t, math.Sqrt(p.Variance()), sd, 0.05)
			assert.InDelta(t, 0.0, stat.Mean(readings, nil), 0.01)
		})
	}
	assert.Less(t, BandLimited.Variance(), WideBand.Variance())
	assert.Len(t, WideBand.StdDevs, 2)
	assert.Len(t, BandLimited.StdDevs, 1)
}

func TestLookupProfile(t *testing.T) {
	p, err := LookupProfile("")
	require.NoError(t, err)
	assert.Equal(t, WideBand.Name, p.Name)

	p, err = LookupProfile("bandlimited")
	require.NoError(t, err)
	assert.Equal(t, BandLimited.Name, p.Name)

	_, err = LookupProfile("mems")
	assert.ErrorIs(t, err, simerr.ErrConfiguration)
	assert.Equal(t, []string{"bandlimited", "ideal", "wideband"}, ProfileNames())
}

func TestNewAccelerometerRejectsBadConfig(t *testing.T) {
	_, err := NewAccelerometer(0, Ideal, nil)
	assert.ErrorIs(t, err, simerr.ErrConfiguration)

	_, err = NewAccelerometer(0.1, NoiseProfile{Name: "bad", StdDevs: []float64{-1}}, nil)
	assert.ErrorIs(t, err, simerr.ErrConfiguration)
}
