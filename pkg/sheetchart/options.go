// Package sheetchart decodes spreadsheets into datasets that can be
// projected onto charts.
package sheetchart

import (
	"path/filepath"
	"strings"
)

// Extension is a workbook file extension accepted by the decoder.
type Extension string

const (
	// ExtXLSX is an Office Open XML workbook.
	ExtXLSX Extension = ".xlsx"
	// ExtXLS is a BIFF workbook, or OOXML content under a legacy name.
	ExtXLS Extension = ".xls"
)

// Extensions returns the accepted extensions.
func Extensions() []Extension {
	return []Extension{ExtXLSX, ExtXLS}
}

// Options configures decoding.
type Options struct {
	// Sheet names the sheet to read. Empty means the first sheet.
	Sheet string
	// IncludeEmbeddedCharts specifies whether to list charts stored in the workbook.
	// If nil, defaults to false.
	IncludeEmbeddedCharts *bool
}

// DefaultOptions returns default decoding options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldIncludeEmbeddedCharts returns whether to list embedded charts.
func (o Options) ShouldIncludeEmbeddedCharts() bool {
	if o.IncludeEmbeddedCharts != nil {
		return *o.IncludeEmbeddedCharts
	}
	return false
}

// AcceptsName reports whether name carries an accepted extension.
func AcceptsName(name string) bool {
	ext := Extension(strings.ToLower(filepath.Ext(name)))
	for _, e := range Extensions() {
		if ext == e {
			return true
		}
	}
	return false
}
