// Package chart draws the error-bar chart of a report: one point per session
// at its average, with symmetric error bars of its total uncertainty.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"uncertainty-gin/internal/models"
)

// Supported output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Point is one session on the chart.
type Point struct {
	Label       string
	Average     float64
	Uncertainty float64
}

// Options controls the chart labels and size.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
	Format string
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 6 * vg.Inch
	}
	if o.Height <= 0 {
		o.Height = 4 * vg.Inch
	}
	if o.Format == "" {
		o.Format = FormatSVG
	}
	o.Format = strings.ToLower(o.Format)
	return o
}

// ContentType returns the MIME type of a chart format.
func ContentType(format string) (string, error) {
	switch strings.ToLower(format) {
	case "", FormatSVG:
		return "image/svg+xml", nil
	case FormatPNG:
		return "image/png", nil
	}
	return "", fmt.Errorf("unsupported chart format %q", format)
}

// PointsFromReport builds one point per session of report.
func PointsFromReport(report models.Report) []Point {
	points := make([]Point, len(report.Sessions))
	for i, s := range report.Sessions {
		points[i] = Point{
			Label:       s.Label,
			Average:     s.Average.Float(),
			Uncertainty: s.TotalUncertainty.Float(),
		}
	}
	return points
}

// errorPoints satisfies plotter.XYer and plotter.YErrorer.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// ErrorBar draws points to w. Sessions without an average are left out;
// a session without an uncertainty is drawn without an error bar.
func ErrorBar(w io.Writer, points []Point, opts Options) error {
	opts = opts.withDefaults()
	if _, err := ContentType(opts.Format); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel

	if len(points) > 0 {
		labels := make([]string, len(points))
		for i, pt := range points {
			labels[i] = pt.Label
		}
		p.NominalX(labels...)
		p.X.Min = -0.5
		p.X.Max = float64(len(points)) - 0.5
	}

	var data errorPoints
	for i, pt := range points {
		if !finite(pt.Average) {
			continue
		}
		u := pt.Uncertainty
		if !finite(u) {
			u = 0
		}
		u = math.Abs(u)
		data.XYs = append(data.XYs, plotter.XY{X: float64(i), Y: pt.Average})
		data.YErrors = append(data.YErrors, struct{ Low, High float64 }{u, u})
	}

	if len(data.XYs) > 0 {
		bars, err := plotter.NewYErrorBars(data)
		if err != nil {
			return fmt.Errorf("failed to build error bars: %w", err)
		}
		bars.LineStyle.Color = color.RGBA{R: 255, A: 255}
		bars.LineStyle.Width = vg.Points(2)
		bars.CapWidth = vg.Points(10)

		scatter, err := plotter.NewScatter(data.XYs)
		if err != nil {
			return fmt.Errorf("failed to build points: %w", err)
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(4)
		scatter.GlyphStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}

		p.Add(bars, scatter)
	}

	wt, err := p.WriterTo(opts.Width, opts.Height, opts.Format)
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
