// Package projector turns two columns of a dataset into a chart-ready series.
package projector

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/spf13/cast"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
)

// Project projects the X and Y columns of ds into a series for sel.Kind.
//
// The second result is false ("no series") when the dataset is empty, either
// column is unset, or the kind is unsupported. Otherwise the series has one
// point per row, in row order.
func Project(ds *models.Dataset, sel models.Selection) (models.Series, bool) {
	if ds.Empty() || sel.X == "" || sel.Y == "" {
		return models.Series{}, false
	}
	pres, ok := PresentationFor(sel.Kind)
	if !ok {
		return models.Series{}, false
	}

	n := len(ds.Rows)
	s := models.Series{
		Kind:         sel.Kind,
		Name:         sel.Y,
		Title:        fmt.Sprintf("%s vs %s", sel.Y, sel.X),
		Labels:       make([]interface{}, n),
		Values:       make([]float64, n),
		Presentation: pres,
	}
	for i, row := range ds.Rows {
		s.Labels[i] = row[sel.X]
		s.Values[i] = ToNumber(row[sel.Y])
	}
	if pres.Scheme == models.SchemePerRow {
		s.Colors = PaletteColors(n)
	}
	return s, true
}

// numericPrefix matches the leading decimal number of a string.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ToNumber coerces a cell value to a float.
// Strings are read up to the end of their leading number, so "5%" is 5 and
// "1,234" is 1. Missing, empty, non-numeric and non-finite values become 0.
func ToNumber(v interface{}) float64 {
	switch tv := v.(type) {
	case nil:
		return 0
	case bool:
		return 0
	case string:
		v = numericPrefix.FindString(strings.TrimSpace(tv))
		if v == "" {
			return 0
		}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
