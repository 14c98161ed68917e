package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"yttranscript/internal/metrics"
	"yttranscript/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve transcripts over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			gin.SetMode(gin.ReleaseMode)

			collector := metrics.NewCollector()
			srv := server.New(a.cfg.Server, a.transcriber(collector), collector, a.logger)
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
