package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbusacker/robot-gnc/internal/engine"
	"github.com/wbusacker/robot-gnc/internal/motor"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func traceLog() engine.SimulationLog {
	rows := make([]engine.SimulationLogRow, 50)
	for i := range rows {
		ts := float64(i) * 0.1
		rows[i] = engine.SimulationLogRow{
			Timestamp:             ts,
			Target:                10,
			EstimatedPosition:     ts * 0.35,
			ActualPosition:        ts * 0.377,
			EstimatedAcceleration: 0.1 * float64(i%3),
			ControlEffort:         5 - ts,
			DriftPct:              -7,
			Direction:             motor.Forward,
		}
	}
	return engine.SimulationLog{
		Meta:    engine.SimulationMeta{SimulationID: "trace", TimeStep: 0.1, RunTime: 5},
		Outcome: engine.OutcomeTimedOut,
		Ticks:   len(rows) - 1,
		Output:  rows,
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, traceLog()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.png")
	require.NoError(t, SavePNG(path, traceLog()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, traceLog()))

	html := buf.String()
	for _, want := range []string{"Simulation trace", "Estimated position", "Actual position", "Control effort", "Drift"} {
		assert.Contains(t, html, want)
	}
}

func TestSaveHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.html")
	require.NoError(t, SaveHTML(path, traceLog()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestEmptyLogIsRejected(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WritePNG(&buf, engine.SimulationLog{}))
	assert.Error(t, WriteHTML(&buf, engine.SimulationLog{}))
}
