package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/server"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/session"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [input.xlsx]",
		Short: "Serve charts over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runServe,
	}
	cmd.Flags().Uint("port", 0, "Port to listen on")
	bindFlags(v, cmd.Flags(), map[string]string{"port": "port"})
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	r, err := newRenderer()
	if err != nil {
		return err
	}
	sess := session.New(r, logger)

	opts := loadOptions()
	if len(args) == 1 {
		wb, err := loadWorkbook(args[0], opts)
		if err != nil {
			return err
		}
		sess.Replace(wb.Dataset)
	}

	return server.NewServer(server.ServerConfig{Port: cfg.Port}, sess, opts, logger).ListenAndServe()
}
