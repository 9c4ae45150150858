package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tickcalc/internal/metrics"
	"github.com/rustyeddy/tickcalc/internal/server"
)

func newServeCmd(rc *RootConfig) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP (JSON API + /metrics)",
		Long: `Serve the calculator as a JSON API.

Routes:
  GET  /healthz
  GET  /metrics
  GET  /api/v1/instruments
  GET  /api/v1/instruments/:name
  POST /api/v1/calculations   {"instrument": "...", "opening_profit": 1000, "risk_amount": 200}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				rc.Config.Server.Addr = addr
			}
			read, write, err := rc.Config.Server.Timeouts()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(contextOrBackground(cmd.Context()), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			h := server.NewHandler(rc.Calc, rc.Log, metrics.New())
			return server.Run(ctx, server.Options{
				Addr:         rc.Config.Server.Addr,
				ReadTimeout:  read,
				WriteTimeout: write,
			}, h, rc.Log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr, default :8080)")
	return cmd
}

// contextOrBackground guards against commands executed without a context.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
