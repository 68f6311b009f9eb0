package projector

import "github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"

// PaletteSize is the number of colours in Palette.
const PaletteSize = 8

// Accent is the single colour used by accent-coloured kinds.
var Accent = models.Color{R: 59, G: 130, B: 246, A: 0xff}

// Palette holds the colours cycled through by per-row kinds.
var Palette = [PaletteSize]models.Color{
	{R: 59, G: 130, B: 246, A: 0xff},
	{R: 239, G: 68, B: 68, A: 0xff},
	{R: 16, G: 185, B: 129, A: 0xff},
	{R: 245, G: 158, B: 11, A: 0xff},
	{R: 139, G: 92, B: 246, A: 0xff},
	{R: 236, G: 72, B: 153, A: 0xff},
	{R: 20, G: 184, B: 166, A: 0xff},
	{R: 249, G: 115, B: 22, A: 0xff},
}

const (
	solidAlpha       = 153 // 0.6
	translucentAlpha = 51  // 0.2
	pointRadius      = 6
	strokeWidth      = 2
)

// presentations maps each chart kind to its styling parameters.
var presentations = map[models.ChartKind]models.Presentation{
	models.KindBar: {
		Fill:      models.FillSolid,
		Smoothing: models.SmoothingNone,
		Scheme:    models.SchemeAccent,
		FillAlpha: solidAlpha,
	},
	models.KindHistogram: {
		Fill:      models.FillSolid,
		Smoothing: models.SmoothingNone,
		Scheme:    models.SchemeAccent,
		FillAlpha: solidAlpha,
	},
	models.KindLine: {
		Fill:        models.FillNone,
		Points:      true,
		Smoothing:   models.SmoothingOn,
		Scheme:      models.SchemeAccent,
		PointRadius: pointRadius,
	},
	models.KindArea: {
		Fill:        models.FillTranslucent,
		Points:      true,
		Smoothing:   models.SmoothingOn,
		Scheme:      models.SchemeAccent,
		FillAlpha:   translucentAlpha,
		PointRadius: pointRadius,
	},
	models.KindPie: {
		Fill:      models.FillNotApplicable,
		Smoothing: models.SmoothingNotApplicable,
		Scheme:    models.SchemePerRow,
	},
	models.KindRadar: {
		Fill:        models.FillTranslucent,
		Points:      true,
		Smoothing:   models.SmoothingNotApplicable,
		Scheme:      models.SchemePerRow,
		FillAlpha:   translucentAlpha,
		PointRadius: pointRadius,
	},
}

// PresentationFor returns the styling parameters of kind.
// The second result is false for unsupported kinds.
func PresentationFor(kind models.ChartKind) (models.Presentation, bool) {
	p, ok := presentations[kind]
	if !ok {
		return models.Presentation{}, false
	}
	p.Accent = Accent
	p.StrokeWidth = strokeWidth
	return p, true
}

// PaletteColor returns the palette colour assigned to row i.
func PaletteColor(i int) models.Color {
	i %= PaletteSize
	if i < 0 {
		i += PaletteSize
	}
	return Palette[i]
}

// PaletteColors returns the colours for n rows.
func PaletteColors(n int) []models.Color {
	colors := make([]models.Color, n)
	for i := range colors {
		colors[i] = PaletteColor(i)
	}
	return colors
}
