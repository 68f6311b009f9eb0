package main

import (
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/export"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/output"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/render"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/selection"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/session"
)

var (
	xColumn     string
	yColumn     string
	kind        string
	previewX    string
	previewY    string
	previewKind string
	chartName   string
	format      string
	dataName    string
	withData    bool
	seriesOut   string
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <input.xlsx>",
		Short: "Render a chart of two columns",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	f := cmd.Flags()
	f.StringVar(&xColumn, "x", "", "X column (default: first column)")
	f.StringVar(&yColumn, "y", "", "Y column (default: second column)")
	f.StringVar(&kind, "kind", "", "Chart kind: bar, line, area, pie, radar, histogram")
	f.StringVar(&previewX, "preview-x", "", "Preview X column without committing it")
	f.StringVar(&previewY, "preview-y", "", "Preview Y column without committing it")
	f.StringVar(&previewKind, "preview-kind", "", "Preview chart kind without committing it")
	f.StringVar(&chartName, "name", export.DefaultChartName, "Chart file name without extension")
	f.StringVar(&format, "format", string(export.FormatImage), "Chart format: image or document")
	f.BoolVar(&withData, "data", false, "Also export the dataset as xlsx")
	f.StringVar(&dataName, "data-name", export.DefaultDataName, "Data file name without extension")
	f.StringVar(&seriesOut, "series", "", "Print the projected series as json or yaml instead of rendering")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	wb, err := loadWorkbook(args[0], loadOptions())
	if err != nil {
		return err
	}

	r, err := newRenderer()
	if err != nil {
		return err
	}
	sess := session.New(r, logger)
	sess.Replace(wb.Dataset)
	if err := applySelection(sess.Selection()); err != nil {
		return err
	}

	if seriesOut != "" {
		return printSeries(cmd, sess)
	}

	chartFormat, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	surface, err := sess.Surface()
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	var chartPath, dataPath string
	var g errgroup.Group
	g.Go(func() error {
		var err error
		chartPath, err = export.SaveChart(cfg.OutputDir, chartName, surface, chartFormat)
		return err
	})
	if withData {
		g.Go(func() error {
			var err error
			dataPath, err = export.SaveData(cfg.OutputDir, dataName, sess.Dataset())
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if surface.Placeholder {
		cmd.Println(aurora.Yellow(render.PlaceholderText))
	}
	cmd.Println(aurora.BrightGreen(fmt.Sprintf("Saved %s", chartPath)))
	if dataPath != "" {
		cmd.Println(aurora.BrightGreen(fmt.Sprintf("Saved %s", dataPath)))
	}
	return nil
}

// applySelection commits the --x/--y/--kind flags, then overlays the
// preview flags.
func applySelection(m *selection.Manager) error {
	if xColumn != "" {
		m.SetXColumn(xColumn)
	}
	if yColumn != "" {
		m.SetYColumn(yColumn)
	}
	if kind != "" {
		k, err := models.ParseChartKind(kind)
		if err != nil {
			return err
		}
		m.SetChartKind(k)
	}

	if previewX != "" {
		m.PreviewX(previewX)
	}
	if previewY != "" {
		m.PreviewY(previewY)
	}
	if previewKind != "" {
		k, err := models.ParseChartKind(previewKind)
		if err != nil {
			return err
		}
		m.PreviewChartKind(k)
	}
	return nil
}

func printSeries(cmd *cobra.Command, sess *session.Session) error {
	var resp struct {
		Series *models.Series `json:"series" yaml:"series"`
	}
	if series, ok := sess.Series(); ok {
		resp.Series = &series
	}

	var (
		data []byte
		err  error
	)
	switch seriesOut {
	case "json":
		data, err = output.ToJSON(resp, true)
	case "yaml":
		data, err = output.ToYAML(resp)
	default:
		return fmt.Errorf("invalid series output: %s (must be json or yaml)", seriesOut)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
