package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"sort"
	"strings"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
)

// ChartTypeMap maps OOXML plot element tags to chart type names.
var ChartTypeMap = map[string]string{
	"lineChart":      "Line",
	"line3DChart":    "3DLine",
	"barChart":       "Bar",
	"bar3DChart":     "3DBar",
	"areaChart":      "Area",
	"area3DChart":    "3DArea",
	"pieChart":       "Pie",
	"pie3DChart":     "3DPie",
	"doughnutChart":  "Doughnut",
	"scatterChart":   "XYScatter",
	"bubbleChart":    "Bubble",
	"radarChart":     "Radar",
	"surfaceChart":   "Surface",
	"surface3DChart": "3DSurface",
	"stockChart":     "Stock",
	"ofPieChart":     "PieOfPie",
}

// chartKindMap maps chart type names onto supported chart kinds.
var chartKindMap = map[string]models.ChartKind{
	"Line":     models.KindLine,
	"3DLine":   models.KindLine,
	"Bar":      models.KindBar,
	"3DBar":    models.KindBar,
	"Area":     models.KindArea,
	"3DArea":   models.KindArea,
	"Pie":      models.KindPie,
	"3DPie":    models.KindPie,
	"Doughnut": models.KindPie,
	"PieOfPie": models.KindPie,
	"Radar":    models.KindRadar,
}

// ExtractEmbeddedCharts lists the charts stored in an xlsx package.
// Unreadable chart parts are skipped.
func ExtractEmbeddedCharts(data []byte) ([]models.EmbeddedChart, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var result []models.EmbeddedChart
	for _, f := range r.File {
		if !isChartPart(f.Name) {
			continue
		}
		chartXML, err := readZipEntry(f)
		if err != nil {
			continue
		}
		chart := parseChartXML(chartXML)
		chart.Part = f.Name
		result = append(result, chart)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Part < result[j].Part })
	return result, nil
}

func isChartPart(name string) bool {
	return strings.HasPrefix(name, "xl/charts/chart") && strings.HasSuffix(name, ".xml")
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// parseChartXML finds the chart title and the first plot type in a chart part.
func parseChartXML(data []byte) models.EmbeddedChart {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var chart models.EmbeddedChart
	inTitle := false
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "title" && chart.ChartType == "":
				inTitle = true
			case t.Name.Local == "t" && inTitle:
				if txt, err := readElementText(decoder); err == nil {
					chart.Title += strings.TrimSpace(txt)
				}
			default:
				if ct, ok := ChartTypeMap[t.Name.Local]; ok && chart.ChartType == "" {
					chart.ChartType = ct
				}
			}
		case xml.EndElement:
			if t.Name.Local == "title" {
				inTitle = false
			}
		}
	}

	if chart.ChartType == "" {
		chart.ChartType = "unknown"
	}
	chart.Kind = chartKindMap[chart.ChartType]
	return chart
}

// readElementText collects the character data of the current element.
func readElementText(decoder *xml.Decoder) (string, error) {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), nil
}
