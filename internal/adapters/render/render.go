// Package render draws chart figures as PNG images.
package render

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/okian/resumedash/internal/domain/aggregate"
	"github.com/okian/resumedash/internal/domain/chart"
	"github.com/okian/resumedash/pkg/logger"
	"github.com/okian/resumedash/pkg/metrics"
)

const (
	defaultWidth  = 960
	defaultHeight = 640
	maxLegend     = 12
	dpi           = 96
)

// Renderer turns figures into PNG bytes. It is stateless apart from its
// configuration and safe for concurrent use.
type Renderer struct {
	width      int
	height     int
	emptyTitle string
	logger     logger.Logger
}

// New creates a Renderer with the given options.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		width:      defaultWidth,
		height:     defaultHeight,
		emptyTitle: "No data for the current selection",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PNG renders fig. Tables return ErrNotRenderable; empty figures render a
// placeholder image.
func (r *Renderer) PNG(ctx context.Context, fig chart.Figure) ([]byte, error) {
	if fig.Kind == chart.KindTable {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotRenderable, fig.Chart, fig.Kind)
	}

	start := time.Now()
	var (
		out []byte
		err error
	)
	switch {
	case fig.Empty():
		out, err = r.placeholder(fig)
	case fig.Kind == chart.KindBar:
		out, err = r.bar(fig)
	case fig.Kind == chart.KindBox:
		out, err = r.box(fig)
	case fig.Kind == chart.KindScatter:
		out, err = r.scatter(fig)
	default:
		err = fmt.Errorf("%w: unknown kind %q", ErrNotRenderable, fig.Kind)
	}
	if err != nil {
		metrics.RecordChartRenderError(string(fig.Chart))
		if r.logger != nil {
			r.logger.Error(ctx, "chart render failed",
				logger.String("chart", string(fig.Chart)),
				logger.Error(err),
			)
		}
		return nil, fmt.Errorf("render %s: %w", fig.Chart, err)
	}

	metrics.RecordChartRender(string(fig.Chart), "png", float64(time.Since(start).Milliseconds()))
	return out, nil
}

func (r *Renderer) bar(fig chart.Figure) ([]byte, error) {
	p := r.newPlot(fig)
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel

	// Horizontal bars grow upwards, so the largest count goes last.
	n := len(fig.Counts)
	values := make(plotter.Values, n)
	names := make([]string, n)
	xys := make(plotter.XYs, n)
	texts := make([]string, n)
	for i, c := range fig.Counts {
		j := n - 1 - i
		values[j] = float64(c.Count)
		names[j] = c.Value
		xys[j] = plotter.XY{X: float64(c.Count), Y: float64(j)}
		texts[j] = strconv.Itoa(c.Count)
	}

	bars, err := plotter.NewBarChart(values, r.barWidth(n))
	if err != nil {
		return nil, err
	}
	bars.Horizontal = true
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalY(names...)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	labels.Offset = vg.Point{X: vg.Points(4)}
	p.Add(labels)

	// Leave room for the value labels right of the longest bar.
	p.X.Min = 0
	p.X.Max = float64(fig.Counts[0].Count) * 1.12
	return r.encode(p)
}

func (r *Renderer) box(fig chart.Figure) ([]byte, error) {
	p := r.newPlot(fig)
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel

	names := make([]string, len(fig.Distributions))
	for i, d := range fig.Distributions {
		b, err := plotter.NewBoxPlot(r.barWidth(len(fig.Distributions)), float64(i), plotter.Values(d.Values))
		if err != nil {
			return nil, fmt.Errorf("box %q: %w", d.Category, err)
		}
		b.FillColor = plotutil.Color(i)
		p.Add(b)
		names[i] = d.Category
	}
	p.NominalX(names...)
	if fig.RotateXTicks {
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}
	return r.encode(p)
}

func (r *Renderer) scatter(fig chart.Figure) ([]byte, error) {
	groups := groupPoints(fig.Points)

	xMin, xMax, yMin, yMax := bounds(fig.Points)
	series := make([]gochart.Series, 0, len(groups))
	for i, g := range groups {
		series = append(series, gochart.ContinuousSeries{
			Name:    g.name,
			XValues: g.xs,
			YValues: g.ys,
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotWidth:    3,
				DotColor:    gochart.GetDefaultColor(i),
			},
		})
	}

	ch := gochart.Chart{
		Title:      fig.Subtitle,
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      gochart.XAxis{Name: fig.XLabel, Range: &gochart.ContinuousRange{Min: xMin, Max: xMax}},
		YAxis:      gochart.YAxis{Name: fig.YLabel, Range: &gochart.ContinuousRange{Min: yMin, Max: yMax}},
		Series:     series,
	}
	if len(groups) > 1 && len(groups) <= maxLegend {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) placeholder(fig chart.Figure) ([]byte, error) {
	p := plot.New()
	p.Title.Text = r.emptyTitle
	if fig.Subtitle != "" {
		p.Title.Text = fig.Subtitle + "\n" + r.emptyTitle
	}
	p.HideAxes()
	return r.encode(p)
}

func (r *Renderer) newPlot(fig chart.Figure) *plot.Plot {
	p := plot.New()
	p.Title.Text = fig.Subtitle
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Add(plotter.NewGrid())
	return p
}

func (r *Renderer) encode(p *plot.Plot) ([]byte, error) {
	w := vg.Length(r.width) * vg.Inch / dpi
	h := vg.Length(r.height) * vg.Inch / dpi
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) barWidth(n int) vg.Length {
	if n <= 0 {
		n = 1
	}
	h := vg.Length(r.height) * vg.Inch / dpi
	w := h / vg.Length(n) * 0.6
	if limit := vg.Points(40); w > limit {
		w = limit
	}
	return w
}

type pointGroup struct {
	name string
	xs   []float64
	ys   []float64
}

// groupPoints splits points by hue in first-encountered order.
func groupPoints(points []aggregate.Point) []pointGroup {
	index := make(map[string]int)
	var groups []pointGroup
	for _, pt := range points {
		i, ok := index[pt.Hue]
		if !ok {
			i = len(groups)
			index[pt.Hue] = i
			groups = append(groups, pointGroup{name: pt.Hue})
		}
		groups[i].xs = append(groups[i].xs, pt.X)
		groups[i].ys = append(groups[i].ys, pt.Y)
	}
	return groups
}

// bounds returns padded axis ranges; go-chart rejects zero-width ranges.
func bounds(points []aggregate.Point) (xMin, xMax, yMin, yMax float64) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, pt := range points {
		xMin, xMax = math.Min(xMin, pt.X), math.Max(xMax, pt.X)
		yMin, yMax = math.Min(yMin, pt.Y), math.Max(yMax, pt.Y)
	}
	xMin, xMax = pad(xMin, xMax)
	yMin, yMax = pad(yMin, yMax)
	return xMin, xMax, yMin, yMax
}

func pad(lo, hi float64) (float64, float64) {
	if lo == hi {
		return lo - 1, hi + 1
	}
	d := (hi - lo) * 0.05
	return lo - d, hi + d
}
