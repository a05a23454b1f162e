package filter

import (
	"gonum.org/v1/gonum/stat"

	"github.com/wbusacker/robot-gnc/internal/simerr"
)

// MovingAverage returns the mean of the last N samples. The window starts
// filled with zeros, so the output lags a step input by N ticks before it
// settles.
type MovingAverage struct {
	terms []float64
}

// NewMovingAverage builds a moving average over window samples.
func NewMovingAverage(window int) (*MovingAverage, error) {
	if window < 1 {
		return nil, simerr.Configf("moving average window must be positive, got %d", window)
	}
	return &MovingAverage{terms: make([]float64, window)}, nil
}

// Window returns the number of samples averaged.
func (m *MovingAverage) Window() int { return len(m.terms) }

func (m *MovingAverage) Apply(x float64) float64 {
	copy(m.terms, m.terms[1:])
	m.terms[len(m.terms)-1] = x
	return stat.Mean(m.terms, nil)
}
