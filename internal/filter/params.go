package filter

import (
	"fmt"
	"math"

	"github.com/wbusacker/robot-gnc/internal/simerr"
)

// Model names accepted in Params.Model.
const (
	ModelNone          = "none"
	ModelMovingAverage = "moving_average"
	ModelRecursive     = "recursive"
)

// Params is the serialisable description of a filter stage. Model selects the
// implementation; the remaining fields are read only by the model that uses
// them.
type Params struct {
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// moving_average: Window samples, or WindowSeconds converted at the run's
	// time step when Window is zero.
	Window        int     `json:"window,omitempty" yaml:"window,omitempty"`
	WindowSeconds float64 `json:"window_seconds,omitempty" yaml:"window_seconds,omitempty"`

	// recursive: zero values select the reference coefficients.
	InputGain     float64 `json:"input_gain,omitempty" yaml:"input_gain,omitempty"`
	FeedbackCoeff float64 `json:"feedback_coeff,omitempty" yaml:"feedback_coeff,omitempty"`
}

// Build constructs the filter described by p for a loop ticking every
// timeStep seconds. An empty model means no filtering.
func (p Params) Build(timeStep float64) (Filter, error) {
	switch p.Model {
	case "", ModelNone:
		return Identity{}, nil
	case ModelMovingAverage:
		window := p.Window
		if window == 0 && p.WindowSeconds != 0 {
			if timeStep <= 0 {
				return nil, simerr.Configf("time step must be positive, got %g", timeStep)
			}
			window = int(math.Round(p.WindowSeconds / timeStep))
		}
		return NewMovingAverage(window)
	case ModelRecursive:
		if p.InputGain == 0 && p.FeedbackCoeff == 0 {
			return NewDefaultRecursive(), nil
		}
		return NewRecursive(p.InputGain, p.FeedbackCoeff)
	default:
		return nil, simerr.Configf("unknown filter model %q", p.Model)
	}
}

func (p Params) String() string {
	switch p.Model {
	case ModelMovingAverage:
		if p.Window > 0 {
			return fmt.Sprintf("%s(%d)", p.Model, p.Window)
		}
		return fmt.Sprintf("%s(%gs)", p.Model, p.WindowSeconds)
	case "":
		return ModelNone
	default:
		return p.Model
	}
}
