package main

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/output"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/selection"
)

var (
	inspectJSON   bool
	inspectYAML   bool
	inspectPretty bool
	inspectCharts bool
)

// inspectReport is the machine-readable inspect output.
type inspectReport struct {
	Summary models.Summary         `json:"summary" yaml:"summary"`
	Sheets  []string               `json:"sheets" yaml:"sheets"`
	Charts  []models.EmbeddedChart `json:"charts,omitempty" yaml:"charts,omitempty"`
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <input.xlsx>",
		Short: "Show the columns, rows and charts of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	cmd.Flags().BoolVar(&inspectJSON, "json", false, "Print JSON")
	cmd.Flags().BoolVar(&inspectYAML, "yaml", false, "Print YAML")
	cmd.Flags().BoolVar(&inspectPretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&inspectCharts, "charts", false, "List the charts stored in the workbook")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	opts := loadOptions()
	opts.IncludeEmbeddedCharts = &inspectCharts
	wb, err := loadWorkbook(args[0], opts)
	if err != nil {
		return err
	}

	m := selection.NewManager()
	m.Reset(wb.Dataset.Columns)
	report := inspectReport{
		Summary: models.Summarize(wb.Dataset, m.Committed()),
		Sheets:  wb.Sheets,
		Charts:  wb.Charts,
	}

	switch {
	case inspectJSON:
		data, err := output.ToJSON(report, inspectPretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		cmd.Println(string(data))
	case inspectYAML:
		data, err := output.ToYAML(report)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		cmd.Print(string(data))
	default:
		printReport(cmd, report)
	}
	return nil
}

func printReport(cmd *cobra.Command, report inspectReport) {
	p := message.NewPrinter(language.English)
	s := report.Summary

	cmd.Println(aurora.Bold(fmt.Sprintf("%s [%s]", s.BookName, s.SheetName)))
	cmd.Println(p.Sprintf("  Rows:    %d", s.Rows))
	if s.Range != "" {
		cmd.Printf("  Range:   %s\n", s.Range)
	}
	cmd.Printf("  Columns: %s\n", strings.Join(s.Columns, ", "))
	cmd.Printf("  X:       %s\n", aurora.Cyan(s.XColumn))
	cmd.Printf("  Y:       %s\n", aurora.Cyan(s.YColumn))

	if len(report.Sheets) > 1 {
		cmd.Printf("  Sheets:  %s\n", strings.Join(report.Sheets, ", "))
	}
	for _, c := range report.Charts {
		kind := string(c.Kind)
		if kind == "" {
			kind = "unsupported"
		}
		title := c.Title
		if title == "" {
			title = "(untitled)"
		}
		cmd.Printf("  Chart:   %s %s -> %s\n", title, aurora.Faint(c.ChartType), aurora.Green(kind))
	}
}
