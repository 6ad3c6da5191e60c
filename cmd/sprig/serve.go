package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/sprig/internal/errors"
)

func serveCmd(g *globalFlags) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the application over HTTP",
		Long: `Serve every page with server-side rendering, live sessions and
Prometheus metrics.

Examples:
  sprig serve
  sprig serve --port=8080
  sprig serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprint(g.out, banner)
			g.success("Listening on %s", cfg.URL())
			if p := cfg.LivePath(); p != "" {
				g.info("Live sessions: %s", p)
			}
			if p := cfg.MetricsPath(); p != "" {
				g.info("Metrics:       %s", p)
			}

			err = newSite(cfg).ListenAndServe(ctx)
			if err != nil && !stderrors.Is(err, context.Canceled) {
				if isAddrInUse(err) {
					return errors.New("E140").Wrap(err)
				}
				return errors.New("E141").Wrap(err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from sprig.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from sprig.json)")
	return cmd
}

func isAddrInUse(err error) bool {
	return stderrors.Is(err, syscall.EADDRINUSE)
}
