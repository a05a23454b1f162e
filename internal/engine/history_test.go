package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbusacker/robot-gnc/internal/motor"
)

func TestHistoryColumnsStayAligned(t *testing.T) {
	h := newHistory(4, 0)
	require.Equal(t, 1, h.Len())

	for i := 1; i <= 3; i++ {
		h.Append(SimulationLogRow{
			Timestamp:         float64(i),
			Target:            4,
			EstimatedPosition: float64(i) * 1.5,
			ActualPosition:    float64(i),
			Direction:         motor.Forward,
		})
	}

	assert.Equal(t, 4, h.Len())
	for _, n := range []int{
		len(h.Target), len(h.EstimatedPosition), len(h.EstimatedVelocity),
		len(h.EstimatedAcceleration), len(h.ActualPosition), len(h.ControlEffort),
		len(h.DriftPct), len(h.Direction),
	} {
		assert.Equal(t, h.Len(), n)
	}

	last := h.Last()
	assert.Equal(t, 3.0, last.Timestamp)
	assert.Equal(t, 4.5, last.EstimatedPosition)
	assert.Equal(t, motor.Forward, last.Direction)

	rows := h.Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, motor.Hold, rows[0].Direction)
	assert.Equal(t, last, rows[3])
}

func TestTrailingPositions(t *testing.T) {
	h := newHistory(1, 0)
	for i := 1; i <= 5; i++ {
		h.Append(SimulationLogRow{EstimatedPosition: float64(i)})
	}

	assert.Equal(t, []float64{3, 4, 5}, h.TrailingPositions(3))
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5}, h.TrailingPositions(6))
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5}, h.TrailingPositions(100))
}

func TestLogFinal(t *testing.T) {
	assert.Equal(t, SimulationLogRow{}, SimulationLog{}.Final())

	l := SimulationLog{Output: []SimulationLogRow{{Timestamp: 0}, {Timestamp: 0.1}}}
	assert.Equal(t, 0.1, l.Final().Timestamp)
}
