package render

import (
	"errors"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
)

var errNothingToDraw = errors.New("all values are zero")

var (
	gridColor  = drawing.Color{R: 209, G: 213, B: 219, A: 255}
	titleColor = drawing.Color{R: 31, G: 41, B: 55, A: 255}
	labelColor = drawing.Color{R: 107, G: 114, B: 128, A: 255}
)

const (
	titleFontSize = 18
	labelFontSize = 10
	radarRings    = 5
)

// drawPie draws one slice per row. Slices use absolute values.
func (r *Renderer) drawPie(s models.Series, w io.Writer) error {
	values := make([]chart.Value, s.Len())
	total := 0.0
	for i, v := range s.Values {
		v = math.Abs(v)
		total += v
		values[i] = chart.Value{
			Label: s.Label(i),
			Value: v,
			Style: chart.Style{
				FillColor:   toColor(sliceColor(s, i)),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: s.Presentation.StrokeWidth,
			},
		}
	}
	if total == 0 {
		return errNothingToDraw
	}

	pie := chart.PieChart{
		Title:      s.Title,
		Width:      r.cfg.Width,
		Height:     r.cfg.Height,
		Font:       r.font,
		Background: r.background(),
		Values:     values,
	}
	return pie.Render(chart.PNG, w)
}

func sliceColor(s models.Series, i int) models.Color {
	if i < len(s.Colors) {
		return s.Colors[i]
	}
	return s.Presentation.Accent
}

// drawRadar draws the series as a filled polygon on radial axes, one axis
// per row, straight onto a go-chart raster renderer.
func (r *Renderer) drawRadar(s models.Series, w io.Writer) error {
	width, height := r.cfg.Width, r.cfg.Height
	rr, err := chart.PNG(width, height)
	if err != nil {
		return err
	}
	p := s.Presentation

	// background
	rr.SetFillColor(drawing.ColorWhite)
	rr.SetStrokeColor(drawing.ColorWhite)
	rr.MoveTo(0, 0)
	rr.LineTo(width, 0)
	rr.LineTo(width, height)
	rr.LineTo(0, height)
	rr.Close()
	rr.FillStroke()

	rr.SetFont(r.font)
	rr.SetFontSize(titleFontSize)
	rr.SetFontColor(titleColor)
	tb := rr.MeasureText(s.Title)
	rr.Text(s.Title, (width-tb.Width())/2, 32)

	cx, cy := width/2, (height+48)/2
	radius := float64(min(width, height-48))/2 - 36
	if radius < 10 {
		radius = 10
	}

	n := s.Len()
	point := func(i int, frac float64) (int, int) {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		return cx + int(math.Round(frac*radius*math.Cos(angle))),
			cy + int(math.Round(frac*radius*math.Sin(angle)))
	}

	// grid rings and spokes
	rr.SetStrokeColor(gridColor)
	rr.SetStrokeWidth(1)
	for ring := 1; ring <= radarRings; ring++ {
		frac := float64(ring) / radarRings
		x, y := point(0, frac)
		rr.MoveTo(x, y)
		for i := 1; i < n; i++ {
			x, y = point(i, frac)
			rr.LineTo(x, y)
		}
		rr.Close()
		rr.Stroke()
	}
	for i := 0; i < n; i++ {
		x, y := point(i, 1)
		rr.MoveTo(cx, cy)
		rr.LineTo(x, y)
		rr.Stroke()
	}

	lo, hi := valueRange(s.Values)
	frac := func(v float64) float64 { return (v - lo) / (hi - lo) }

	// data polygon
	rr.SetFillColor(toColor(p.FillColor()))
	rr.SetStrokeColor(toColor(p.Accent))
	rr.SetStrokeWidth(p.StrokeWidth)
	x, y := point(0, frac(s.Values[0]))
	rr.MoveTo(x, y)
	for i := 1; i < n; i++ {
		x, y = point(i, frac(s.Values[i]))
		rr.LineTo(x, y)
	}
	rr.Close()
	rr.FillStroke()

	// per-row markers and labels
	rr.SetFontSize(labelFontSize)
	for i, v := range s.Values {
		c := toColor(sliceColor(s, i))
		if p.Points {
			x, y := point(i, frac(v))
			rr.SetFillColor(c)
			rr.SetStrokeColor(drawing.ColorWhite)
			rr.SetStrokeWidth(1)
			rr.Circle(p.PointRadius, x, y)
			rr.FillStroke()
		}

		label := s.Label(i)
		lb := rr.MeasureText(label)
		lx, ly := point(i, 1+14/radius)
		rr.SetFontColor(labelColor)
		if i < len(s.Colors) {
			rr.SetFontColor(c)
		}
		rr.Text(label, lx-lb.Width()/2, ly+lb.Height()/2)
	}

	return rr.Save(w)
}
