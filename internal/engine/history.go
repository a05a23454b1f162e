package engine

import "github.com/wbusacker/robot-gnc/internal/motor"

// History is the column store of a run. Every column always has the same
// length; rows are only ever appended.
type History struct {
	Timestamp             []float64
	Target                []float64
	EstimatedPosition     []float64
	EstimatedVelocity     []float64
	EstimatedAcceleration []float64
	ActualPosition        []float64
	ControlEffort         []float64
	DriftPct              []float64
	Direction             []motor.Direction
}

// newHistory returns a history seeded with the t=0 row: target set, vehicle
// at rest at the origin.
func newHistory(target float64, capacity int) *History {
	h := &History{
		Timestamp:             make([]float64, 0, capacity),
		Target:                make([]float64, 0, capacity),
		EstimatedPosition:     make([]float64, 0, capacity),
		EstimatedVelocity:     make([]float64, 0, capacity),
		EstimatedAcceleration: make([]float64, 0, capacity),
		ActualPosition:        make([]float64, 0, capacity),
		ControlEffort:         make([]float64, 0, capacity),
		DriftPct:              make([]float64, 0, capacity),
		Direction:             make([]motor.Direction, 0, capacity),
	}
	h.Append(SimulationLogRow{Target: target, Direction: motor.Hold})
	return h
}

// Len returns the number of rows.
func (h *History) Len() int { return len(h.Timestamp) }

// Append adds one row to every column.
func (h *History) Append(r SimulationLogRow) {
	h.Timestamp = append(h.Timestamp, r.Timestamp)
	h.Target = append(h.Target, r.Target)
	h.EstimatedPosition = append(h.EstimatedPosition, r.EstimatedPosition)
	h.EstimatedVelocity = append(h.EstimatedVelocity, r.EstimatedVelocity)
	h.EstimatedAcceleration = append(h.EstimatedAcceleration, r.EstimatedAcceleration)
	h.ActualPosition = append(h.ActualPosition, r.ActualPosition)
	h.ControlEffort = append(h.ControlEffort, r.ControlEffort)
	h.DriftPct = append(h.DriftPct, r.DriftPct)
	h.Direction = append(h.Direction, r.Direction)
}

// Row returns row i.
func (h *History) Row(i int) SimulationLogRow {
	return SimulationLogRow{
		Timestamp:             h.Timestamp[i],
		Target:                h.Target[i],
		EstimatedPosition:     h.EstimatedPosition[i],
		EstimatedVelocity:     h.EstimatedVelocity[i],
		EstimatedAcceleration: h.EstimatedAcceleration[i],
		ActualPosition:        h.ActualPosition[i],
		ControlEffort:         h.ControlEffort[i],
		DriftPct:              h.DriftPct[i],
		Direction:             h.Direction[i],
	}
}

// Last returns the most recent row.
func (h *History) Last() SimulationLogRow { return h.Row(h.Len() - 1) }

// Rows copies the history out as log rows.
func (h *History) Rows() []SimulationLogRow {
	rows := make([]SimulationLogRow, h.Len())
	for i := range rows {
		rows[i] = h.Row(i)
	}
	return rows
}

// TrailingPositions returns the last n estimated positions, or all of them
// when fewer exist. The slice aliases the history.
func (h *History) TrailingPositions(n int) []float64 {
	if n >= h.Len() {
		return h.EstimatedPosition
	}
	return h.EstimatedPosition[h.Len()-n:]
}
