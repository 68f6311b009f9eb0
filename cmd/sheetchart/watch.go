package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/export"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/render"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/session"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <input.xlsx>",
		Short: "Re-render the chart whenever the workbook changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
	f := cmd.Flags()
	f.StringVar(&xColumn, "x", "", "X column (default: first column)")
	f.StringVar(&yColumn, "y", "", "Y column (default: second column)")
	f.StringVar(&kind, "kind", "", "Chart kind: bar, line, area, pie, radar, histogram")
	f.StringVar(&chartName, "name", export.DefaultChartName, "Chart file name without extension")
	f.StringVar(&format, "format", string(export.FormatImage), "Chart format: image or document")
	return cmd
}

// reloader decodes the workbook in the background on each change. Loads may
// overlap; the session keeps only the most recently started one.
type reloader struct {
	path    string
	opts    sheetchart.Options
	session *session.Session
	outDir  string
	stem    string
	format  export.Format
	log     *zap.Logger

	wg sync.WaitGroup
	// saveMu serializes writes to the chart file.
	saveMu sync.Mutex
}

// reload starts a load and renders the chart once it lands.
func (rl *reloader) reload() {
	load := rl.session.BeginLoad()
	rl.wg.Add(1)
	go func() {
		defer rl.wg.Done()

		wb, err := sheetchart.Load(rl.path, rl.opts)
		if err != nil {
			load.Abandon()
			rl.log.Warn(sheetchart.UserMessage(err), zap.String("path", rl.path), zap.Error(err))
			return
		}
		if !load.Complete(wb.Dataset) {
			return
		}
		if err := applySelection(rl.session.Selection()); err != nil {
			rl.log.Warn("invalid selection", zap.Error(err))
		}

		surface, err := rl.session.Surface()
		if err != nil {
			rl.log.Error("render failed", zap.Error(err))
			return
		}
		out, err := rl.save(surface)
		if err != nil {
			rl.log.Error("export failed", zap.Error(err))
			return
		}
		rl.log.Info("chart saved", zap.String("path", out), zap.Bool("placeholder", surface.Placeholder))
	}()
}

// save writes surface to the chart file, one reload at a time.
func (rl *reloader) save(surface *render.Surface) (string, error) {
	rl.saveMu.Lock()
	defer rl.saveMu.Unlock()
	return export.SaveChart(rl.outDir, rl.stem, surface, rl.format)
}

// wait blocks until every started load has finished.
func (rl *reloader) wait() {
	rl.wg.Wait()
}

// handle reacts to a watcher event for the workbook.
func (rl *reloader) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(rl.path) {
		return
	}
	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
		rl.log.Debug("workbook changed", zap.String("op", event.Op.String()))
		rl.reload()
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	chartFormat, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	r, err := newRenderer()
	if err != nil {
		return err
	}

	rl := &reloader{
		path:    args[0],
		opts:    loadOptions(),
		session: session.New(r, logger),
		outDir:  cfg.OutputDir,
		stem:    chartName,
		format:  chartFormat,
		log:     logger,
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error starting watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(rl.path)); err != nil {
		return fmt.Errorf("error starting '%s' watcher: %w", rl.path, err)
	}
	logger.Info("watching workbook", zap.String("path", rl.path))

	rl.reload()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	for {
		select {
		case <-ctx.Done():
			rl.wait()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			rl.handle(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.String("path", rl.path), zap.Error(err))
		}
	}
}
