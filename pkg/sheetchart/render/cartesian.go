package render

import (
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
)

const (
	// smoothSteps is the number of segments drawn between two smoothed points.
	smoothSteps = 8
	// maxTicks bounds the number of category labels on the x axis.
	maxTicks = 20
	// axisMargin is the horizontal space taken by the y axis and padding.
	axisMargin = 100
)

func (r *Renderer) drawBar(s models.Series, w io.Writer) error {
	per := (r.cfg.Width - axisMargin) / s.Len()
	spacing := per / 5
	if spacing < 1 {
		spacing = 1
	}
	return r.barChart(s, per-spacing, spacing).Render(chart.PNG, w)
}

// drawHistogram draws adjacent bars with a minimal gap.
func (r *Renderer) drawHistogram(s models.Series, w io.Writer) error {
	per := (r.cfg.Width - axisMargin) / s.Len()
	return r.barChart(s, per-1, 1).Render(chart.PNG, w)
}

func (r *Renderer) barChart(s models.Series, barWidth, spacing int) chart.BarChart {
	if barWidth < 1 {
		barWidth = 1
	}
	p := s.Presentation
	style := chart.Style{
		FillColor:   toColor(p.FillColor()),
		StrokeColor: toColor(p.Accent),
		StrokeWidth: p.StrokeWidth,
	}

	bars := make([]chart.Value, s.Len())
	for i, v := range s.Values {
		bars[i] = chart.Value{Label: s.Label(i), Value: v, Style: style}
	}

	lo, hi := valueRange(s.Values)
	return chart.BarChart{
		Title:        s.Title,
		Width:        r.cfg.Width,
		Height:       r.cfg.Height,
		Font:         r.font,
		Background:   r.background(),
		BarWidth:     barWidth,
		BarSpacing:   spacing,
		UseBaseValue: lo < 0,
		BaseValue:    0,
		YAxis:        chart.YAxis{Range: &chart.ContinuousRange{Min: lo, Max: hi}},
		Bars:         bars,
	}
}

// drawLine draws line and area kinds over the row index.
func (r *Renderer) drawLine(s models.Series, w io.Writer) error {
	p := s.Presentation
	xs := make([]float64, s.Len())
	for i := range xs {
		xs[i] = float64(i)
	}

	sx, sy := xs, s.Values
	// marked reports whether output point index is an original row.
	marked := func(int) bool { return true }
	switch {
	case s.Len() == 1:
		// A lone row is drawn as a flat segment across its slot.
		v := s.Values[0]
		sx, sy = []float64{-0.5, 0, 0.5}, []float64{v, v, v}
		marked = func(index int) bool { return index == 1 }
	case p.Smoothing == models.SmoothingOn && s.Len() > 2:
		sx, sy = catmullRom(xs, s.Values, smoothSteps)
		marked = func(index int) bool { return index%smoothSteps == 0 }
	}

	style := chart.Style{
		StrokeColor: toColor(p.Accent),
		StrokeWidth: p.StrokeWidth,
	}
	if p.Fill == models.FillTranslucent || p.Fill == models.FillSolid {
		style.FillColor = toColor(p.FillColor())
	}
	if p.Points {
		radius := p.PointRadius
		style.DotColor = toColor(p.Accent)
		style.DotWidth = radius
		style.DotWidthProvider = func(_, _ chart.Range, index int, _, _ float64) float64 {
			if marked(index) {
				return radius
			}
			return 0
		}
	}

	lo, hi := valueRange(sy)
	ch := chart.Chart{
		Title:      s.Title,
		Width:      r.cfg.Width,
		Height:     r.cfg.Height,
		Font:       r.font,
		Background: r.background(),
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(s.Len()) - 0.5},
			Ticks: categoryTicks(s),
		},
		YAxis: chart.YAxis{Range: &chart.ContinuousRange{Min: lo, Max: hi}},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: s.Name, XValues: sx, YValues: sy, Style: style},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

// categoryTicks labels at most maxTicks row positions. Unlabelled ticks at
// -0.5 and n-0.5 keep half a slot of room on both sides; the axis spans
// the ticks, so a single row still gets a non-empty x range.
func categoryTicks(s models.Series) []chart.Tick {
	every := int(math.Ceil(float64(s.Len()) / maxTicks))
	if every < 1 {
		every = 1
	}
	ticks := []chart.Tick{{Value: -0.5}}
	for i := 0; i < s.Len(); i += every {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: s.Label(i)})
	}
	return append(ticks, chart.Tick{Value: float64(s.Len()) - 0.5})
}

// catmullRom interpolates a uniform Catmull-Rom spline through the points, emitting steps segments per interval. The curve passes
// through every input point; input point i lands at output index i*steps.
func catmullRom(xs, ys []float64, steps int) ([]float64, []float64) {
	n := len(xs)
	outX := make([]float64, 0, (n-1)*steps+1)
	outY := make([]float64, 0, (n-1)*steps+1)

	at := func(v []float64, i int) float64 {
		if i < 0 {
			return 2*v[0] - v[1]
		}
		if i >= n {
			return 2*v[n-1] - v[n-2]
		}
		return v[i]
	}

	for i := 0; i < n-1; i++ {
		for s := 0; s < steps; s++ {
			t := float64(s) / float64(steps)
			outX = append(outX, spline(at(xs, i-1), xs[i], xs[i+1], at(xs, i+2), t))
			outY = append(outY, spline(at(ys, i-1), ys[i], ys[i+1], at(ys, i+2), t))
		}
	}
	outX = append(outX, xs[n-1])
	outY = append(outY, ys[n-1])
	return outX, outY
}

func spline(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * ((2 * p1) +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}
