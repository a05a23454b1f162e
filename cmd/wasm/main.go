//go:build js && wasm

// Command wasm exposes the simulator to the browser via WebAssembly.
// After loading, it registers two global JavaScript functions:
//
//	runSimulation(jsonString) -> jsonString
//	presetInput(name) -> jsonString
//
// runSimulation takes a JSON-encoded SimulationInput and returns the
// SimulationLog, the same contract the CLI uses. presetInput returns the
// SimulationInput of a built-in scenario as a starting point.
package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/wbusacker/robot-gnc/internal/config"
	"github.com/wbusacker/robot-gnc/internal/engine"
	"github.com/wbusacker/robot-gnc/internal/monitoring"
)

func main() {
	monitoring.SetLogger(func(format string, v ...any) {
		js.Global().Get("console").Call("log", fmt.Sprintf(format, v...))
	})
	js.Global().Set("runSimulation", js.FuncOf(runSimulation))
	js.Global().Set("presetInput", js.FuncOf(presetInput))
	select {} // keep the WASM module alive until the page is closed
}

func runSimulation(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{"error": "no input provided"}
	}

	result, err := engine.RunJSON(args[0].String())
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return result
}

func presetInput(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{"error": "no preset name provided"}
	}

	in, err := config.Preset(args[0].String())
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	out, err := json.Marshal(in)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return string(out)
}
