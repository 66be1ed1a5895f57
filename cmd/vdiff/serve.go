package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdiff/pkg/server"
)

func serveCmd(opts *globalOptions) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the diff server",
		Long: `Run the HTTP and WebSocket server.

Settings come from vdiff.json; flags override them.

Endpoints:
  GET  /healthz      liveness
  POST /api/diff     {"prev", "next"} to operations
  POST /api/render   {"prev", "next"} to patched HTML
  GET  /live         live session (WebSocket)
  GET  /metrics      Prometheus metrics

Examples:
  vdiff serve
  vdiff serve --port=9000 --host=0.0.0.0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				opts.config.Server.Port = port
			}
			if host != "" {
				opts.config.Server.Host = host
			}

			srvConfig, err := serverConfig(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success(cmd.ErrOrStderr(), "Listening on http://%s", srvConfig.Address)
			return server.New(srvConfig).Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from vdiff.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from vdiff.json)")

	return cmd
}

// serverConfig maps the file configuration onto the server's.
func serverConfig(opts *globalOptions) (*server.Config, error) {
	cfg := opts.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	readTimeout, _ := cfg.ReadTimeout()
	writeTimeout, _ := cfg.WriteTimeout()

	return &server.Config{
		Address:        cfg.Address(),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		MaxMessageSize: cfg.Server.MaxMessageSize,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Render:         opts.renderConfig(),
		Matcher:        opts.matcher(),
		Verify:         cfg.Diff.Verify,
		MetricsPath:    cfg.Metrics.Path,
		DisableMetrics: !cfg.Metrics.Enabled,
		Namespace:      cfg.Metrics.Namespace,
		Logger:         opts.logger,
	}, nil
}
