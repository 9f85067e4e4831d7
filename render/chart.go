// Package render draws and prints chart specs produced by the engine.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/launchdash/engine"
)

// Format selects an image encoding.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() (chart.RendererProvider, error) {
	switch f {
	case SVG:
		return chart.SVG, nil
	case PNG:
		return chart.PNG, nil
	}
	return nil, fmt.Errorf("unknown image format %q", f)
}

// Size of drawn charts in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 480
)

// outcomeAxis keeps the 0/1 outcome dots off the plot border. The axis takes
// its bounds from the outermost ticks, so the padding ticks are unlabelled.
var (
	outcomeAxis  = chart.ContinuousRange{Min: -0.25, Max: 1.25}
	outcomeTicks = []chart.Tick{
		{Value: -0.25},
		{Value: 0, Label: "0"},
		{Value: 1, Label: "1"},
		{Value: 1.25},
	}
)

// placeholder colour for empty and error charts
var mutedColor = drawing.ColorFromHex("D1D5DB")

// Draw encodes spec as an image.
// Charts without data, or in their error state, still draw: a labelled
// placeholder stands in for the slices or the points.
func Draw(w io.Writer, spec engine.ChartSpec, f Format) error {
	rp, err := f.provider()
	if err != nil {
		return err
	}
	switch spec.Kind {
	case engine.KindProportion:
		return drawPie(w, spec, rp)
	case engine.KindScatter:
		return drawScatter(w, spec, rp)
	}
	return fmt.Errorf("unknown chart kind %q", spec.Kind)
}

func hexColor(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}

func placeholderLabel(spec engine.ChartSpec) string {
	if spec.Err != "" {
		return "Unavailable: " + spec.Err
	}
	return "No data"
}

func drawPie(w io.Writer, spec engine.ChartSpec, rp chart.RendererProvider) error {
	pie := chart.PieChart{
		Title:  spec.Title,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
	if spec.Err != "" || spec.Empty() {
		pie.Values = []chart.Value{{
			Label: placeholderLabel(spec),
			Value: 1,
			Style: chart.Style{FillColor: mutedColor, StrokeColor: mutedColor},
		}}
		return pie.Render(rp, w)
	}

	config := engine.BuildChart(spec)
	for i, s := range spec.Slices {
		// zero slices have no arc to draw
		if s.Value <= 0 {
			continue
		}
		color := hexColor(config.Colors[i])
		pie.Values = append(pie.Values, chart.Value{
			Label: fmt.Sprintf("%s (%s)", s.Label, engine.FormatNumber(s.Value)),
			Value: s.Value,
			Style: chart.Style{FillColor: color, StrokeColor: drawing.ColorWhite},
		})
	}
	return pie.Render(rp, w)
}

// payloadAxis pads the x range so a single point or a zero-width
// selection still has a drawable span.
func payloadAxis(points []engine.ScatterPoint) chart.ContinuousRange {
	if len(points) == 0 {
		return chart.ContinuousRange{Min: 0, Max: 1}
	}
	lo, hi := points[0].X, points[0].X
	for _, p := range points[1:] {
		lo = min(lo, p.X)
		hi = max(hi, p.X)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = max(hi*0.05, 1)
	}
	return chart.ContinuousRange{Min: max(lo-pad, 0), Max: hi + pad}
}

func drawScatter(w io.Writer, spec engine.ChartSpec, rp chart.RendererProvider) error {
	config := engine.BuildChart(spec)
	xr := payloadAxis(spec.Points)
	yr := outcomeAxis

	ch := chart.Chart{
		Title:      spec.Title,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: config.XAxis, Range: &xr},
		YAxis: chart.YAxis{
			Name:  config.YAxis,
			Range: &yr,
			Ticks: outcomeTicks,
		},
	}

	if len(config.Series) == 0 {
		ch.Title = spec.Title + " - " + placeholderLabel(spec)
		// go-chart needs one visible series; this one draws neither line nor dot.
		ch.Series = []chart.Series{chart.ContinuousSeries{
			XValues: []float64{xr.Min},
			YValues: []float64{0},
			Style:   chart.Style{StrokeWidth: chart.Disabled},
		}}
		return ch.Render(rp, w)
	}

	for _, s := range config.Series {
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i], ys[i] = p.X, p.Y
		}
		ch.Series = append(ch.Series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(hexColor(s.Color)),
		})
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(rp, w)
}

// pointStyle draws dots without connecting lines.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}
