package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// chartCmd holds the flags for the 'chart' subcommand.
type chartCmd struct {
	planFlags
	output  string
	lumpSum bool
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render the simulation's value development as a PNG" }
func (*chartCmd) Usage() string {
	return `dca chart [-f <plan.toml>] [plan flags] [-o <file.png>] [-lumpsum] <symbol>...

  Runs the simulation and renders the invested capital and portfolio value
  over time. With -lumpsum the day-one baseline is drawn as a third series.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	c.planFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "development.png", "Output PNG file.")
	f.BoolVar(&c.lumpSum, "lumpsum", false, "Draw the lump-sum baseline as well.")
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	plan, err := c.Plan(f)
	if err != nil {
		return fail(err)
	}
	s, err := runPlan(plan)
	if err != nil {
		return fail(err)
	}

	rows := s.dev.Overall()
	if len(rows) < 2 {
		return fail(fmt.Errorf("need at least 2 aggregated rows to draw a chart, got %d", len(rows)))
	}

	xValues := make([]time.Time, len(rows))
	valueY := make([]float64, len(rows))
	capitalY := make([]float64, len(rows))
	for i, r := range rows {
		xValues[i] = r.Date.Time()
		valueY[i] = r.Value.Float64()
		capitalY[i] = r.Capital.Float64()
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name: "Portfolio Value",
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("2563eb"),
				StrokeWidth: 2.5,
			},
			XValues: xValues,
			YValues: valueY,
		},
		chart.TimeSeries{
			Name: "Invested Capital",
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("9ca3af"),
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 3.0},
			},
			XValues: xValues,
			YValues: capitalY,
		},
	}

	if c.lumpSum {
		points, _, err := comparisons(s, true, false)
		if err != nil {
			return fail(err)
		}
		xs := make([]time.Time, len(points))
		ys := make([]float64, len(points))
		for i, p := range points {
			xs[i] = p.Date.Time()
			ys[i] = p.Value.Float64()
		}
		series = append(series, chart.TimeSeries{
			Name: "Lump Sum",
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("16a34a"),
				StrokeWidth: 1.5,
			},
			XValues: xs,
			YValues: ys,
		})
	}

	base := plan.BaseCurrency()
	graph := chart.Chart{
		Title:  fmt.Sprintf("Development %s", plan.Range),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f %s", f, base)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	out, err := os.Create(c.output)
	if err != nil {
		return fail(err)
	}
	defer out.Close()
	if err := graph.Render(chart.PNG, out); err != nil {
		return fail(fmt.Errorf("chart render failed: %w", err))
	}
	fmt.Printf("Wrote %s\n", c.output)
	return subcommands.ExitSuccess
}
