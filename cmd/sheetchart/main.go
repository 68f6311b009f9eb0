// Package main provides the CLI entry point for sheetchart.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/config"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/loggers"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/render"
)

var (
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "sheetchart",
		Short: "Chart two columns of a spreadsheet",
		Long: `sheetchart loads the first sheet of an Excel workbook, lets you pick
an X column, a Y column and a chart kind, and renders the result.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(v, configPath)
			if err != nil {
				return err
			}
			logger, err = loggers.New(cfg.Debug, cfg.LogFile)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			loggers.Sync(logger)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default: .sheetchart/config.yaml)")
	flags.Int("width", 0, "Chart width in pixels")
	flags.Int("height", 0, "Chart height in pixels")
	flags.String("output-dir", "", "Directory for exported files")
	flags.String("sheet", "", "Sheet to load (default: first sheet)")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.Bool("debug", false, "Enable debug logging")
	bindFlags(v, flags, map[string]string{
		"width":      "width",
		"height":     "height",
		"output_dir": "output-dir",
		"sheet":      "sheet",
		"log_file":   "log-file",
		"debug":      "debug",
	})

	rootCmd.AddCommand(
		newInspectCmd(),
		newRenderCmd(),
		newServeCmd(v),
		newWatchCmd(),
	)
	return rootCmd
}

// bindFlags binds config keys to flags; an unset flag leaves the key to the
// config file, environment or default.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
}

func loadOptions() sheetchart.Options {
	opts := sheetchart.DefaultOptions()
	opts.Sheet = cfg.Sheet
	return opts
}

func newRenderer() (*render.Renderer, error) {
	r, err := render.New(render.Config{Width: cfg.Width, Height: cfg.Height}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}
	return r, nil
}

// loadWorkbook decodes path, prefixing failures with the user-visible notice.
func loadWorkbook(path string, opts sheetchart.Options) (*sheetchart.Workbook, error) {
	wb, err := sheetchart.Load(path, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sheetchart.UserMessage(err), err)
	}
	return wb, nil
}
