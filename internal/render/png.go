// Package render draws simulation logs as static PNG plots and interactive
// HTML charts.
package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/wbusacker/robot-gnc/internal/engine"
)

// Page size of the PNG trace.
const (
	PNGWidth  = 12 * vg.Inch
	PNGHeight = 12 * vg.Inch
)

var palette = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 255},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 255},
}

// series is one named column plotted against time.
type series struct {
	name  string
	value func(engine.SimulationLogRow) float64
}

// panel is one stacked chart of the trace.
type panel struct {
	title, yLabel string
	series        []series
}

// panels is the layout shared by the PNG and HTML renderings.
var panels = []panel{
	{"Position", "m", []series{
		{"Target", func(r engine.SimulationLogRow) float64 { return r.Target }},
		{"Estimated position", func(r engine.SimulationLogRow) float64 { return r.EstimatedPosition }},
		{"Actual position", func(r engine.SimulationLogRow) float64 { return r.ActualPosition }},
	}},
	{"Acceleration", "m/s²", []series{
		{"Estimated acceleration", func(r engine.SimulationLogRow) float64 { return r.EstimatedAcceleration }},
	}},
	{"Drift", "%", []series{
		{"Drift", func(r engine.SimulationLogRow) float64 { return r.DriftPct }},
	}},
	{"Control", "effort", []series{
		{"Control effort", func(r engine.SimulationLogRow) float64 { return r.ControlEffort }},
	}},
}

func points(rows []engine.SimulationLogRow, s series) plotter.XYs {
	pts := make(plotter.XYs, len(rows))
	for i, r := range rows {
		pts[i] = plotter.XY{X: r.Timestamp, Y: s.value(r)}
	}
	return pts
}

// WritePNG draws log as stacked time-series panels and encodes it as PNG.
func WritePNG(w io.Writer, log engine.SimulationLog) error {
	if len(log.Output) == 0 {
		return fmt.Errorf("render: log %q has no samples", log.Meta.SimulationID)
	}

	plots := make([][]*plot.Plot, len(panels))
	for i, pn := range panels {
		p := plot.New()
		p.Title.Text = pn.title
		p.X.Label.Text = "Time (s)"
		p.Y.Label.Text = pn.yLabel
		p.Add(plotter.NewGrid())

		for j, s := range pn.series {
			line, err := plotter.NewLine(points(log.Output, s))
			if err != nil {
				return fmt.Errorf("render %s: %w", s.name, err)
			}
			line.Color = palette[j%len(palette)]
			line.Width = vg.Points(1)
			p.Add(line)
			p.Legend.Add(s.name, line)
		}
		p.Legend.Top = true
		p.Legend.Left = false
		p.Legend.XOffs = -10
		p.Legend.YOffs = -10

		plots[i] = []*plot.Plot{p}
	}
	plots[0][0].Title.Text = fmt.Sprintf("%s (%s, %d ticks)", log.Meta.SimulationID, log.Outcome, log.Ticks)

	img := vgimg.New(PNGWidth, PNGHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: 3 * vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the PNG trace of log to path.
func SavePNG(path string, log engine.SimulationLog) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return WritePNG(f, log)
}
