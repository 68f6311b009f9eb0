package sheetchart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/parser"
	"github.com/xuri/excelize/v2"
)

// Workbook is a decoded dataset plus workbook-level metadata.
type Workbook struct {
	Dataset *models.Dataset
	// Sheets lists every sheet name in the workbook.
	Sheets []string
	// Charts lists the charts stored in the workbook, when requested.
	Charts []models.EmbeddedChart
}

// Load decodes the workbook at path.
func Load(path string, opts Options) (*Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	return Decode(data, filepath.Base(path), opts)
}

// LoadReader decodes a workbook read from r; name supplies the extension.
func LoadReader(r io.Reader, name string, opts Options) (*Workbook, error) {
	if !AcceptsName(name) {
		return nil, NewDecodeError(name, "", "open", ErrUnsupportedExtension)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, NewDecodeError(name, "", "open", err)
	}
	return Decode(data, name, opts)
}

// Decode decodes workbook bytes. The dataset's columns are the keys of the
// first data row; cells in other header columns stay in the rows but are not
// offered as columns.
func Decode(data []byte, name string, opts Options) (*Workbook, error) {
	bookName := filepath.Base(name)
	if !AcceptsName(bookName) {
		return nil, NewDecodeError(bookName, "", "open", ErrUnsupportedExtension)
	}

	legacy, err := parser.IsLegacyWorkbook(data)
	if err != nil {
		return nil, NewDecodeError(bookName, "", "open", err)
	}
	if legacy {
		return decodeLegacy(data, bookName, opts)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, NewDecodeError(bookName, "", "open", err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	sheetName := opts.Sheet
	if sheetName == "" {
		if len(sheetList) == 0 {
			return nil, NewDecodeError(bookName, "", "sheet", ErrEmptySheet)
		}
		sheetName = sheetList[0]
	}

	rec, err := parser.ExtractRecords(f, sheetName)
	if err != nil {
		return nil, NewDecodeError(bookName, sheetName, "records", err)
	}
	wb, err := newWorkbook(bookName, sheetName, sheetList, rec)
	if err != nil {
		return nil, err
	}

	if opts.ShouldIncludeEmbeddedCharts() {
		charts, err := parser.ExtractEmbeddedCharts(data)
		if err != nil {
			return nil, NewDecodeError(bookName, "", "charts", err)
		}
		wb.Charts = charts
	}

	return wb, nil
}

// decodeLegacy decodes a BIFF workbook. Embedded charts are not read from
// BIFF files.
func decodeLegacy(data []byte, bookName string, opts Options) (*Workbook, error) {
	sheet, err := parser.ExtractLegacyRecords(data, opts.Sheet)
	if err != nil {
		return nil, NewDecodeError(bookName, opts.Sheet, "records", fmt.Errorf("%w: %v", ErrLegacyFormat, err))
	}
	return newWorkbook(bookName, sheet.Name, sheet.Sheets, sheet.Records)
}

func newWorkbook(bookName, sheetName string, sheets []string, rec *parser.Records) (*Workbook, error) {
	if len(rec.Rows) == 0 {
		return nil, NewDecodeError(bookName, sheetName, "records", ErrEmptySheet)
	}
	return &Workbook{
		Dataset: &models.Dataset{
			BookName:  bookName,
			SheetName: sheetName,
			Range:     rec.Range,
			Header:    rec.Header,
			Columns:   rec.Columns,
			Rows:      rec.Rows,
		},
		Sheets: sheets,
	}, nil
}
