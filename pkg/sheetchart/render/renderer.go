// Package render draws projected series with go-chart.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
)

const (
	// DefaultWidth and DefaultHeight size the surface when Config leaves them unset.
	DefaultWidth  = 960
	DefaultHeight = 480

	// PlaceholderText is drawn when there is no series to render.
	PlaceholderText = "Select columns to display chart"
)

// Config sizes the rendering surface.
type Config struct {
	Width  int
	Height int
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	return c
}

// Surface is a rendered chart.
type Surface struct {
	Image image.Image
	// PNG is the PNG encoding of Image.
	PNG    []byte
	Width  int
	Height int
	// Placeholder is true when no chart was drawn.
	Placeholder bool
}

// drawFunc renders a series as PNG into w.
type drawFunc func(r *Renderer, s models.Series, w io.Writer) error

// drawers selects the renderer variant for each chart kind.
var drawers = map[models.ChartKind]drawFunc{
	models.KindBar:       (*Renderer).drawBar,
	models.KindHistogram: (*Renderer).drawHistogram,
	models.KindLine:      (*Renderer).drawLine,
	models.KindArea:      (*Renderer).drawLine,
	models.KindPie:       (*Renderer).drawPie,
	models.KindRadar:     (*Renderer).drawRadar,
}

// Renderer draws series onto PNG surfaces.
type Renderer struct {
	cfg  Config
	font *truetype.Font
	log  *zap.Logger
}

// New loads the chart font and returns a ready renderer.
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load chart font: %w", err)
	}
	return &Renderer{cfg: cfg.withDefaults(), font: font, log: log}, nil
}

// Size returns the surface dimensions.
func (r *Renderer) Size() (int, int) {
	return r.cfg.Width, r.cfg.Height
}

// Render draws s. Series that cannot be drawn (for example a pie whose
// values are all zero) produce a placeholder surface rather than an error.
func (r *Renderer) Render(s models.Series) (*Surface, error) {
	draw, ok := drawers[s.Kind]
	if !ok || s.Len() == 0 {
		return r.Placeholder()
	}

	var buf bytes.Buffer
	if err := draw(r, s, &buf); err != nil {
		r.log.Warn("chart render failed; showing placeholder",
			zap.String("kind", string(s.Kind)), zap.Int("points", s.Len()), zap.Error(err))
		return r.placeholder(fmt.Sprintf("Unable to draw %s chart", s.Kind))
	}

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("decode rendered chart: %w", err)
	}
	r.log.Debug("chart rendered", zap.String("kind", string(s.Kind)), zap.Int("points", s.Len()))
	return &Surface{
		Image:  img,
		PNG:    buf.Bytes(),
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

// Placeholder draws the "no series" surface.
func (r *Renderer) Placeholder() (*Surface, error) {
	return r.placeholder(PlaceholderText)
}

func (r *Renderer) placeholder(text string) (*Surface, error) {
	img := placeholderImage(r.cfg.Width, r.cfg.Height, text)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode placeholder: %w", err)
	}
	return &Surface{
		Image:       img,
		PNG:         buf.Bytes(),
		Width:       r.cfg.Width,
		Height:      r.cfg.Height,
		Placeholder: true,
	}, nil
}

func toColor(c models.Color) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// valueRange returns a y range that contains 0 and every value.
func valueRange(values []float64) (lo, hi float64) {
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

func (r *Renderer) background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 24, Bottom: 16}}
}
