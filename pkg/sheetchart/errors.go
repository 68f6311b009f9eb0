package sheetchart

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedExtension indicates a file that is not an Excel workbook.
var ErrUnsupportedExtension = errors.New("unsupported file type")

// ErrLegacyFormat indicates a BIFF (.xls) workbook that could not be read.
var ErrLegacyFormat = errors.New("unreadable binary xls workbook")

// ErrEmptySheet indicates a sheet without any data rows.
var ErrEmptySheet = errors.New("sheet contains no data rows")

// DecodeError represents an error while decoding a workbook.
type DecodeError struct {
	BookName  string
	SheetName string
	Component string // "open", "sheet", "records", "charts"
	Err       error
}

func (e *DecodeError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("decode error in %q (%s): %v", e.BookName, e.Component, e.Err)
	}
	return fmt.Sprintf("decode error in %q sheet %q (%s): %v", e.BookName, e.SheetName, e.Component, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new DecodeError.
func NewDecodeError(bookName, sheetName, component string, err error) *DecodeError {
	return &DecodeError{
		BookName:  bookName,
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}

// UserMessage returns the notice shown to the user for a decode failure.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedExtension):
		return "Please upload an Excel file (.xlsx or .xls)"
	case errors.Is(err, ErrLegacyFormat):
		return "Unable to read this .xls file. Please save it as .xlsx and upload it again."
	case errors.Is(err, ErrEmptySheet):
		return "The sheet does not contain any data rows."
	case errors.Is(err, ErrFileNotFound):
		return err.Error()
	}
	return "Error parsing Excel file. Please make sure it's a valid Excel file."
}
