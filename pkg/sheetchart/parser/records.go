package parser

import (
	"math"
	"strconv"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
	"github.com/xuri/excelize/v2"
)

// emptyHeader names header cells that have no text.
const emptyHeader = "__EMPTY"

// Records is the header-keyed content of a sheet.
type Records struct {
	// Header contains every header name, left to right.
	Header []string
	// Columns contains the keys of the first row, in header order.
	Columns []string
	// Rows contains one map per non-blank data row.
	Rows []models.Row
	// Range is the used range of the sheet.
	Range string
}

// typeFunc converts the raw text of the cell at (row, col), both 0-based,
// into a dataset value.
type typeFunc func(row, col int, raw string) (interface{}, error)

// ExtractRecords reads a sheet into header-keyed rows.
// The first row of the used range is the header; blank rows are skipped
// and empty cells are left out of the row maps. Text cells stay strings,
// booleans become bool and numeric cells become int64 or float64.
func ExtractRecords(f *excelize.File, sheetName string) (*Records, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	return buildRecords(rows, func(row, col int, raw string) (interface{}, error) {
		cell, err := excelize.CoordinatesToCellName(col+1, row+1)
		if err != nil {
			return nil, err
		}
		cellType, err := f.GetCellType(sheetName, cell)
		if err != nil {
			return nil, err
		}
		return typedValue(cellType, raw), nil
	})
}

// buildRecords turns a grid of raw cell text into Records.
func buildRecords(rows [][]string, typed typeFunc) (*Records, error) {
	b, ok := FindBounds(rows)
	if !ok {
		return &Records{}, nil
	}

	rec := &Records{
		Header: headerNames(cellsIn(rows[b.MinRow], b.MinCol, b.MaxCol)),
		Range:  b.Range(),
	}

	for rowIdx := b.MinRow + 1; rowIdx <= b.MaxRow; rowIdx++ {
		cells := cellsIn(rows[rowIdx], b.MinCol, b.MaxCol)
		row := make(models.Row)
		for i, cellValue := range cells {
			if cellValue == "" {
				continue
			}
			v, err := typed(rowIdx, b.MinCol+i, cellValue)
			if err != nil {
				return nil, err
			}
			row[rec.Header[i]] = v
		}
		if len(row) > 0 {
			rec.Rows = append(rec.Rows, row)
		}
	}

	if len(rec.Rows) > 0 {
		for _, name := range rec.Header {
			if _, ok := rec.Rows[0][name]; ok {
				rec.Columns = append(rec.Columns, name)
			}
		}
	}

	return rec, nil
}

// typedValue applies the stored cell type to raw cell text.
func typedValue(cellType excelize.CellType, raw string) interface{} {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return raw
	case excelize.CellTypeBool:
		return raw == "1" || raw == "TRUE" || raw == "true"
	}
	return parseValue(raw)
}

// cellsIn returns row[minCol..maxCol], padding short rows with "".
func cellsIn(row []string, minCol, maxCol int) []string {
	out := make([]string, maxCol-minCol+1)
	for i := range out {
		if c := minCol + i; c < len(row) {
			out[i] = row[c]
		}
	}
	return out
}

// headerNames turns header cells into unique column names.
// Blank cells become "__EMPTY"; repeats get "_1", "_2", ... suffixes.
func headerNames(cells []string) []string {
	names := make([]string, len(cells))
	used := make(map[string]bool, len(cells))
	counts := make(map[string]int, len(cells))

	for i, cell := range cells {
		base := cell
		if base == "" {
			base = emptyHeader
		}
		name := base
		for used[name] {
			counts[base]++
			name = base + "_" + strconv.Itoa(counts[base])
		}
		used[name] = true
		names[i] = name
	}

	return names
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for finite decimals, or the original string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}
