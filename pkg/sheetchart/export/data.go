package export

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
)

// DataSheet is the sheet name used for data exports.
const DataSheet = "Data"

// DataContentType is the MIME type of data exports.
const DataContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DataFileName returns <stem>.xlsx, defaulting the stem to DefaultDataName.
func DataFileName(stem string) string {
	if stem == "" {
		stem = DefaultDataName
	}
	return stem + ".xlsx"
}

// DataHeader returns every key used by the rows, ordered by the dataset
// header; keys missing from the header follow in first-seen order.
func DataHeader(ds *models.Dataset) []string {
	if ds == nil {
		return nil
	}
	present := make(map[string]bool)
	for _, row := range ds.Rows {
		for k := range row {
			present[k] = true
		}
	}

	var header []string
	seen := make(map[string]bool)
	for _, name := range ds.Header {
		if present[name] && !seen[name] {
			header = append(header, name)
			seen[name] = true
		}
	}
	for _, row := range ds.Rows {
		for _, k := range sortedKeys(row) {
			if !seen[k] {
				header = append(header, k)
				seen[k] = true
			}
		}
	}
	return header
}

// WriteData writes the whole dataset as an xlsx workbook to w.
func WriteData(w io.Writer, ds *models.Dataset) error {
	f, err := buildWorkbook(ds)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// SaveData writes the dataset to dir/<stem>.xlsx and returns the path.
func SaveData(dir, stem string, ds *models.Dataset) (string, error) {
	return saveFile(filepath.Join(dir, DataFileName(stem)), func(w io.Writer) error {
		return WriteData(w, ds)
	})
}

func buildWorkbook(ds *models.Dataset) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		f.Close()
		return nil, err
	}

	header := DataHeader(ds)
	if len(header) == 0 {
		return f, nil
	}

	cells := make([]interface{}, len(header))
	for i, name := range header {
		cells[i] = name
	}
	if err := f.SetSheetRow(DataSheet, "A1", &cells); err != nil {
		f.Close()
		return nil, err
	}

	for rowIdx, row := range ds.Rows {
		values := make([]interface{}, len(header))
		for i, name := range header {
			values[i] = row[name]
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(DataSheet, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", rowIdx+1, err)
		}
	}
	return f, nil
}

func sortedKeys(row models.Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
