package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/extrame/xls"
	"github.com/richardlehane/mscfb"
)

// legacyMaxCols is the column count of a BIFF8 sheet.
const legacyMaxCols = 256

// legacyCharset is passed to the BIFF reader for 8-bit strings.
const legacyCharset = "utf-8"

// ErrNoWorkbookStream indicates a compound file without a BIFF workbook.
var ErrNoWorkbookStream = errors.New("no workbook stream")

// cfbSignature is the magic number of OLE compound files.
var cfbSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// IsCompoundFile reports whether data starts with the compound-file signature.
func IsCompoundFile(data []byte) bool {
	return bytes.HasPrefix(data, cfbSignature)
}

// IsLegacyWorkbook reports whether data is a BIFF (.xls) workbook, i.e. a
// compound file holding a "Workbook" or "Book" stream. Encrypted OOXML
// packages are compound files too but carry neither stream.
func IsLegacyWorkbook(data []byte) (bool, error) {
	if !IsCompoundFile(data) {
		return false, nil
	}

	entry, err := workbookEntry(data)
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}

// workbookEntry returns the BIFF stream of a compound file, or nil.
func workbookEntry(data []byte) (*mscfb.File, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	for entry, err := doc.Next(); ; entry, err = doc.Next() {
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		switch entry.Name {
		case "Workbook", "Book":
			return entry, nil
		}
	}
}

// checkWorkbookStream reads the whole BIFF stream once. The BIFF reader
// exits the process on a broken sector chain, so those files stop here.
func checkWorkbookStream(data []byte) error {
	entry, err := workbookEntry(data)
	if err != nil {
		return err
	}
	if entry == nil {
		return ErrNoWorkbookStream
	}
	if _, err := io.Copy(io.Discard, entry); err != nil {
		return fmt.Errorf("reading workbook stream: %w", err)
	}
	return nil
}

// LegacySheet is the decoded content of one sheet of a BIFF workbook.
type LegacySheet struct {
	// Name is the decoded sheet's name.
	Name string
	// Sheets lists every sheet name in the workbook.
	Sheets []string
	// Records holds the sheet content.
	Records *Records
}

// ExtractLegacyRecords reads the named sheet of a BIFF workbook, or the
// first sheet when sheetName is empty. The BIFF reader exposes cell text
// only, so numeric-looking text is typed like a number.
func ExtractLegacyRecords(data []byte, sheetName string) (sheet *LegacySheet, err error) {
	defer func() {
		if r := recover(); r != nil {
			sheet, err = nil, fmt.Errorf("malformed workbook: %v", r)
		}
	}()

	if err := checkWorkbookStream(data); err != nil {
		return nil, err
	}

	wb, err := xls.OpenReader(bytes.NewReader(data), legacyCharset)
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, ErrNoWorkbookStream
	}

	out := &LegacySheet{}
	var ws *xls.WorkSheet
	for i := 0; i < wb.NumSheets(); i++ {
		s := wb.GetSheet(i)
		if s == nil {
			continue
		}
		out.Sheets = append(out.Sheets, s.Name)
		if ws == nil && (sheetName == "" || s.Name == sheetName) {
			ws = s
		}
	}
	if ws == nil {
		if sheetName == "" {
			return nil, errors.New("workbook has no sheets")
		}
		return nil, fmt.Errorf("sheet %s does not exist", sheetName)
	}
	out.Name = ws.Name

	out.Records, err = buildRecords(legacyGrid(ws), func(_, _ int, raw string) (interface{}, error) {
		return parseValue(raw), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// legacyGrid copies the cell text of ws into a row-major grid.
func legacyGrid(ws *xls.WorkSheet) [][]string {
	grid := make([][]string, int(ws.MaxRow)+1)
	for i := range grid {
		row := legacyRow(ws, i)
		if row == nil {
			continue
		}
		last := row.LastCol()
		if last <= 0 || last > legacyMaxCols {
			last = legacyMaxCols
		}
		cells := make([]string, last)
		n := 0
		for c := range cells {
			cells[c] = row.Col(c)
			if cells[c] != "" {
				n = c + 1
			}
		}
		grid[i] = cells[:n]
	}
	return grid
}

// legacyRow returns row i of ws, or nil when the sheet stores no such row.
func legacyRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	// WorkSheet.Row dereferences missing rows.
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}
