package parser

import (
	"strings"
	"testing"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
	"github.com/xuri/excelize/v2"
)

func TestExtractEmbeddedCharts(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Month", "Sales"})
	f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Jan", 10})
	f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Feb", 20})

	series := []excelize.ChartSeries{{
		Name:       "Sheet1!$B$1",
		Categories: "Sheet1!$A$2:$A$3",
		Values:     "Sheet1!$B$2:$B$3",
	}}
	if err := f.AddChart("Sheet1", "D1", &excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: "Monthly Sales"}},
	}); err != nil {
		t.Fatalf("AddChart failed: %v", err)
	}
	if err := f.AddChart("Sheet1", "D20", &excelize.Chart{
		Type:   excelize.Doughnut,
		Series: series,
	}); err != nil {
		t.Fatalf("AddChart failed: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}

	charts, err := ExtractEmbeddedCharts(buf.Bytes())
	if err != nil {
		t.Fatalf("ExtractEmbeddedCharts failed: %v", err)
	}
	if len(charts) != 2 {
		t.Fatalf("Expected 2 charts, got %d", len(charts))
	}

	if charts[0].ChartType != "Line" || charts[0].Kind != models.KindLine {
		t.Errorf("Unexpected first chart: %+v", charts[0])
	}
	if !strings.Contains(charts[0].Title, "Monthly Sales") {
		t.Errorf("Expected title to contain %q, got %q", "Monthly Sales", charts[0].Title)
	}
	if charts[1].ChartType != "Doughnut" || charts[1].Kind != models.KindPie {
		t.Errorf("Unexpected second chart: %+v", charts[1])
	}
}

func TestExtractEmbeddedChartsNotZip(t *testing.T) {
	if _, err := ExtractEmbeddedCharts([]byte("plain text")); err == nil {
		t.Error("Expected an error for non-zip data")
	}
}

func TestParseChartXML(t *testing.T) {
	tests := []struct {
		xml      string
		expected models.EmbeddedChart
	}{
		{
			`<c:chartSpace xmlns:c="c" xmlns:a="a"><c:chart><c:title><c:tx><c:rich><a:p><a:r><a:t>Revenue</a:t></a:r></a:p></c:rich></c:tx></c:title><c:plotArea><c:radarChart/><c:valAx><c:title><c:tx><c:rich><a:p><a:r><a:t>Axis</a:t></a:r></a:p></c:rich></c:tx></c:title></c:valAx></c:plotArea></c:chart></c:chartSpace>`,
			models.EmbeddedChart{ChartType: "Radar", Title: "Revenue", Kind: models.KindRadar},
		},
		{
			`<c:chartSpace xmlns:c="c"><c:chart><c:plotArea><c:scatterChart/></c:plotArea></c:chart></c:chartSpace>`,
			models.EmbeddedChart{ChartType: "XYScatter"},
		},
		{
			`<c:chartSpace xmlns:c="c"><c:chart/></c:chartSpace>`,
			models.EmbeddedChart{ChartType: "unknown"},
		},
	}

	for _, tt := range tests {
		result := parseChartXML([]byte(tt.xml))
		if result != tt.expected {
			t.Errorf("parseChartXML = %+v, expected %+v", result, tt.expected)
		}
	}
}

func TestIsCompoundFile(t *testing.T) {
	if !IsCompoundFile(append(append([]byte{}, cfbSignature...), 0, 0)) {
		t.Error("Expected signature to be detected")
	}
	if IsCompoundFile([]byte("PK\x03\x04")) {
		t.Error("Zip data is not a compound file")
	}

	legacy, err := IsLegacyWorkbook([]byte("PK\x03\x04"))
	if err != nil || legacy {
		t.Errorf("IsLegacyWorkbook(zip) = %v, %v; expected false, nil", legacy, err)
	}

	if _, err := IsLegacyWorkbook(cfbSignature); err == nil {
		t.Error("Expected an error for a truncated compound file")
	}
}
