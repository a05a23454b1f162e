// Package filter provides the smoothing stages applied to accelerometer
// readings before they are integrated.
//
// Every stage satisfies Filter, so the engine can swap them without knowing
// which one it holds. Filters are stateful: each Apply call is one tick.
package filter

// Filter smooths a signal one sample at a time.
type Filter interface {
	Apply(x float64) float64
}

// Identity passes samples through unchanged. It stands in when no filter is
// configured.
type Identity struct{}

func (Identity) Apply(x float64) float64 { return x }
