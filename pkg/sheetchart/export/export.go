// Package export turns rendered charts and datasets into downloadable files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/render"
)

// ErrNoSurface indicates that no rendered chart is available.
var ErrNoSurface = errors.New("no chart to export")

// ErrUnknownFormat indicates a chart format tag other than image or document.
var ErrUnknownFormat = errors.New("unknown export format")

// Format selects the chart artifact type.
type Format string

const (
	// FormatImage exports a PNG image.
	FormatImage Format = "image"
	// FormatDocument exports a PDF document embedding the image.
	FormatDocument Format = "document"
)

const (
	// DefaultChartName is the file stem used for chart exports.
	DefaultChartName = "chart"
	// DefaultDataName is the file stem used for data exports.
	DefaultDataName = "filtered-data"
)

// PDF placement of the chart image, in millimetres.
const (
	pdfMargin     = 10.0
	pdfImageWidth = 190.0
)

// ParseFormat parses a format tag. "png" and "pdf" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image", "png":
		return FormatImage, nil
	case "document", "pdf":
		return FormatDocument, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension returns the file extension for f.
func (f Format) Extension() string {
	if f == FormatDocument {
		return ".pdf"
	}
	return ".png"
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatDocument {
		return "application/pdf"
	}
	return "image/png"
}

// FileName joins a stem and the format's extension.
// An empty stem falls back to DefaultChartName.
func (f Format) FileName(stem string) string {
	if stem == "" {
		stem = DefaultChartName
	}
	return stem + f.Extension()
}

// WriteChart writes surface to w in format f.
func WriteChart(w io.Writer, surface *render.Surface, f Format) error {
	if surface == nil || len(surface.PNG) == 0 {
		return ErrNoSurface
	}
	switch f {
	case FormatImage:
		_, err := w.Write(surface.PNG)
		return err
	case FormatDocument:
		return writePDF(w, surface)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// writePDF places the chart image on an A4 page, 190mm wide at a 10mm offset,
// keeping the aspect ratio.
func writePDF(w io.Writer, surface *render.Surface) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("chart", opt, bytes.NewReader(surface.PNG))

	height := float64(surface.Height) * pdfImageWidth / float64(surface.Width)
	pdf.ImageOptions("chart", pdfMargin, pdfMargin, pdfImageWidth, height, false, opt, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return pdf.Output(w)
}

// SaveChart writes the chart to dir/<stem>.<ext> and returns the path.
func SaveChart(dir, stem string, surface *render.Surface, f Format) (string, error) {
	if surface == nil || len(surface.PNG) == 0 {
		return "", ErrNoSurface
	}
	return saveFile(filepath.Join(dir, f.FileName(stem)), func(w io.Writer) error {
		return WriteChart(w, surface, f)
	})
}

func saveFile(path string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := write(file); err != nil {
		file.Close()
		os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	return path, nil
}
