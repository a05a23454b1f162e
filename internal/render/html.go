package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/wbusacker/robot-gnc/internal/engine"
)

// WriteHTML renders log as a page of interactive line charts, one per panel.
func WriteHTML(w io.Writer, log engine.SimulationLog) error {
	if len(log.Output) == 0 {
		return fmt.Errorf("render: log %q has no samples", log.Meta.SimulationID)
	}

	x := make([]string, len(log.Output))
	for i, r := range log.Output {
		x[i] = strconv.FormatFloat(r.Timestamp, 'f', -1, 64)
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Simulation %s", log.Meta.SimulationID)

	for _, pn := range panels {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px"}),
			charts.WithTitleOpts(opts.Title{
				Title:    pn.title,
				Subtitle: fmt.Sprintf("%s, %d ticks", log.Outcome, log.Ticks),
			}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
			charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
			charts.WithXAxisOpts(opts.XAxis{Name: "Time (s)", NameLocation: "middle", NameGap: 25}),
			charts.WithYAxisOpts(opts.YAxis{Name: pn.yLabel}),
			charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
		)
		line.SetXAxis(x)

		for _, s := range pn.series {
			data := make([]opts.LineData, len(log.Output))
			for i, r := range log.Output {
				data[i] = opts.LineData{Value: s.value(r)}
			}
			line.AddSeries(s.name, data)
		}
		page.AddCharts(line)
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// SaveHTML writes the HTML chart page of log to path.
func SaveHTML(path string, log engine.SimulationLog) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return WriteHTML(f, log)
}
