package config

import (
	"sort"

	"github.com/wbusacker/robot-gnc/internal/engine"
	"github.com/wbusacker/robot-gnc/internal/filter"
	"github.com/wbusacker/robot-gnc/internal/pid"
	"github.com/wbusacker/robot-gnc/internal/sensor"
	"github.com/wbusacker/robot-gnc/internal/simerr"
)

// Preset names.
const (
	PresetDeadReckoning         = "dead-reckoning"
	PresetDeadReckoningFiltered = "dead-reckoning-filtered"
	PresetOpenLoop              = "open-loop"
)

var presets = map[string]func() engine.SimulationInput{
	// Coarse 10 Hz loop driven straight off the raw accelerometer.
	PresetDeadReckoning: func() engine.SimulationInput {
		return engine.SimulationInput{
			Meta:           engine.SimulationMeta{SimulationID: PresetDeadReckoning, TimeStep: 0.1, RunTime: 360},
			Mode:           engine.ModeClosedLoop,
			TargetDistance: 10,
			Motor:          engine.MotorInput{MaxRPM: 120},
			Sensor:         engine.SensorInput{Profile: sensor.WideBand.Name},
			Filter:         filter.Params{Model: filter.ModelNone},
			Controller:     engine.ControllerInput{Gains: pid.Gains{Kp: 0.5, Ki: 1, Kd: 0}},
			Steering:       engine.SteerSign,
			Drift:          engine.DriftEstimateVsActual,
			SteadyState:    engine.SteadyStateInput{Window: 5, Tolerance: 0.0001},
		}
	},

	// 100 Hz loop with a half-second moving average and a dead-band that
	// lets the motor hold.
	PresetDeadReckoningFiltered: func() engine.SimulationInput {
		return engine.SimulationInput{
			Meta:           engine.SimulationMeta{SimulationID: PresetDeadReckoningFiltered, TimeStep: 0.01, RunTime: 360},
			Mode:           engine.ModeClosedLoop,
			TargetDistance: 10,
			Motor:          engine.MotorInput{MaxRPM: 120},
			Sensor:         engine.SensorInput{Profile: sensor.WideBand.Name},
			Filter:         filter.Params{Model: filter.ModelMovingAverage, WindowSeconds: 0.5},
			Controller:     engine.ControllerInput{Gains: pid.Gains{Kp: 0.5, Ki: 1000, Kd: 2}, DeadBand: 0.01},
			Steering:       engine.SteerDeadBand,
			Drift:          engine.DriftActualVsEstimate,
			SteadyState:    engine.SteadyStateInput{Window: 5, Tolerance: 0.001},
		}
	},

	// Timed drive at the measured cruise speed with no feedback.
	PresetOpenLoop: func() engine.SimulationInput {
		return engine.SimulationInput{
			Meta:           engine.SimulationMeta{SimulationID: PresetOpenLoop, TimeStep: 0.01, RunTime: 360},
			Mode:           engine.ModeOpenLoop,
			TargetDistance: 10,
			Motor:          engine.MotorInput{MaxRPM: 120},
			Drift:          engine.DriftEstimateVsActual,
			SteadyState:    engine.SteadyStateInput{Window: 5, Tolerance: 0.0001},
		}
	},
}

// PresetNames lists the registered presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Preset returns a fresh copy of the named scenario. The seed is left unset.
func Preset(name string) (engine.SimulationInput, error) {
	build, ok := presets[name]
	if !ok {
		return engine.SimulationInput{}, simerr.Configf("unknown preset %q (known: %v)", name, PresetNames())
	}
	return build(), nil
}
