// Package models defines the data structures shared by the decoder, the
// series projector, and the chart renderer.
package models

import (
	"github.com/tiendc/go-deepcopy"
)

// Row maps a column name to its cell value.
// Values are int64, float64, bool or string; empty cells are absent.
type Row map[string]interface{}

// Dataset represents a decoded sheet.
type Dataset struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// SheetName is the sheet the rows were read from.
	SheetName string `json:"sheet_name"`
	// Range is the used range of the sheet (e.g. "A1:D10").
	Range string `json:"range,omitempty"`
	// Header contains every header name in sheet order.
	Header []string `json:"header"`
	// Columns contains the keys of the first row in header order.
	Columns []string `json:"columns"`
	// Rows contains the data rows in sheet order.
	Rows []Row `json:"rows"`
}

// Empty reports whether the dataset has no rows.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Rows) == 0
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Clone returns a deep copy of the dataset, rows included.
func (d *Dataset) Clone() (*Dataset, error) {
	if d == nil {
		return nil, nil
	}
	var out Dataset
	if err := deepcopy.Copy(&out, *d); err != nil {
		return nil, err
	}
	return &out, nil
}

// Summary is the dataset information shown next to the chart.
type Summary struct {
	BookName  string   `json:"book_name" yaml:"book_name"`
	SheetName string   `json:"sheet_name" yaml:"sheet_name"`
	Range     string   `json:"range,omitempty" yaml:"range,omitempty"`
	Rows      int      `json:"rows" yaml:"rows"`
	Columns   []string `json:"columns" yaml:"columns"`
	XColumn   string   `json:"x_column" yaml:"x_column"`
	YColumn   string   `json:"y_column" yaml:"y_column"`
}

// Summarize builds a Summary for the dataset and selection.
// Unset columns are reported as "None".
func Summarize(d *Dataset, sel Selection) Summary {
	s := Summary{
		Rows:    d.Len(),
		XColumn: orNone(sel.X),
		YColumn: orNone(sel.Y),
	}
	if d != nil {
		s.BookName = d.BookName
		s.SheetName = d.SheetName
		s.Range = d.Range
		s.Columns = d.Columns
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
