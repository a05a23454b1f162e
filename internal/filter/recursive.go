package filter

import "github.com/wbusacker/robot-gnc/internal/simerr"

// Coefficients of the reference two-pole low-pass. The feedback pole sits
// close to the unit circle; the input gain normalises DC gain to one.
const (
	DefaultInputGain     = 1.031426266
	DefaultFeedbackCoeff = -0.9390625058
)

// Recursive is a fixed two-pole IIR low-pass:
//
//	y[n] = x[n]/g + x[n-1]/g + c·y[n-1]
type Recursive struct {
	inputGain     float64
	feedbackCoeff float64
	forward       [2]float64
	back          [2]float64
}

// NewRecursive builds the filter. gain must be non-zero.
func NewRecursive(inputGain, feedbackCoeff float64) (*Recursive, error) {
	if inputGain == 0 {
		return nil, simerr.Configf("recursive filter input gain must be non-zero")
	}
	return &Recursive{inputGain: inputGain, feedbackCoeff: feedbackCoeff}, nil
}

// NewDefaultRecursive builds the filter with the reference coefficients.
func NewDefaultRecursive() *Recursive {
	return &Recursive{inputGain: DefaultInputGain, feedbackCoeff: DefaultFeedbackCoeff}
}

func (r *Recursive) Apply(x float64) float64 {
	r.back[1] = r.back[0]
	r.forward[1] = r.forward[0]

	r.forward[0] = x / r.inputGain
	r.back[0] = r.forward[1] + r.forward[0] + r.feedbackCoeff*r.back[1]
	return r.back[0]
}
