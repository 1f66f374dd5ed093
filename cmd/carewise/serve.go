// ABOUTME: CLI command for starting the HTTP API.
// ABOUTME: Serves profile, analysis, and history endpoints until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/carewise/internal/api"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API over the configured storage backend.

ENDPOINTS:

  GET    /healthz                 Liveness probe
  GET    /readyz                  Readiness probe (pings storage)
  GET    /api/profile             Saved profile (404 when none)
  PUT    /api/profile             Validate and save a profile
  DELETE /api/profile             Remove the saved profile
  GET    /api/analysis            Analysis of the saved profile
  POST   /api/analysis            Analyze a posted profile without saving it
  GET    /api/assessments         Assessment history (?limit=20)
  GET    /api/assessments/:id     One assessment by ID or prefix
  DELETE /api/assessments/:id     Delete one assessment

The listen address comes from --addr, CAREWISE_HTTP_ADDR, or http_addr in
the config file, defaulting to :8080.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.GetHTTPAddr()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return api.NewServer(repo, logger).ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8080)")
	rootCmd.AddCommand(serveCmd)
}
