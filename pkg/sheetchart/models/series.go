package models

import "fmt"

// Fill describes how the area under or inside a series is painted.
type Fill string

const (
	FillNone        Fill = "none"
	FillSolid       Fill = "solid"
	FillTranslucent Fill = "translucent"
	// FillNotApplicable is used by kinds without a fill concept.
	FillNotApplicable Fill = "n/a"
)

// Smoothing describes whether connecting lines are curved.
type Smoothing string

const (
	SmoothingNone          Smoothing = "none"
	SmoothingOn            Smoothing = "on"
	SmoothingNotApplicable Smoothing = "n/a"
)

// ColorScheme selects between one accent colour and a colour per row.
type ColorScheme string

const (
	SchemeAccent ColorScheme = "accent"
	SchemePerRow ColorScheme = "per_row"
)

// Color is an 8-bit RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Hex returns "#rrggbb", or "#rrggbbaa" when c is not opaque.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// Presentation holds the per-kind styling parameters of a series.
type Presentation struct {
	Fill      Fill        `json:"fill" yaml:"fill"`
	Points    bool        `json:"points" yaml:"points"`
	Smoothing Smoothing   `json:"smoothing" yaml:"smoothing"`
	Scheme    ColorScheme `json:"scheme" yaml:"scheme"`
	// Accent is the stroke colour for accent-coloured kinds.
	Accent Color `json:"accent" yaml:"accent"`
	// FillAlpha is the alpha applied to Accent when filling.
	FillAlpha uint8 `json:"fill_alpha" yaml:"fill_alpha"`
	// PointRadius is the marker radius in pixels (0 when Points is false).
	PointRadius float64 `json:"point_radius" yaml:"point_radius"`
	// StrokeWidth is the border/line width in pixels.
	StrokeWidth float64 `json:"stroke_width" yaml:"stroke_width"`
}

// FillColor returns the accent colour with the fill alpha applied.
func (p Presentation) FillColor() Color {
	switch p.Fill {
	case FillSolid, FillTranslucent:
		return p.Accent.WithAlpha(p.FillAlpha)
	}
	return p.Accent.WithAlpha(0)
}

// Series is a chart-ready projection of two dataset columns.
type Series struct {
	Kind ChartKind `json:"kind" yaml:"kind"`
	// Name is the legend label (the Y column name).
	Name string `json:"name" yaml:"name"`
	// Title is "<y> vs <x>".
	Title string `json:"title" yaml:"title"`
	// Labels holds the raw X cell of each row.
	Labels []interface{} `json:"labels" yaml:"labels"`
	// Values holds the coerced Y cell of each row.
	Values       []float64    `json:"values" yaml:"values"`
	Presentation Presentation `json:"presentation" yaml:"presentation"`
	// Colors holds one colour per row for per-row schemes, nil otherwise.
	Colors []Color `json:"colors,omitempty" yaml:"colors,omitempty"`
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.Values)
}

// Label returns the i'th label formatted for display.
// Missing labels render as the empty string.
func (s Series) Label(i int) string {
	if i < 0 || i >= len(s.Labels) || s.Labels[i] == nil {
		return ""
	}
	return fmt.Sprint(s.Labels[i])
}
