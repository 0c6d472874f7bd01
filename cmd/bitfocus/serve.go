package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the JSON API server backed by the local database.

Examples:
  bitfocus serve
  bitfocus serve --addr :9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to server.addr from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp(context.Background())
	if err != nil {
		return err
	}
	defer a.close()

	addr := serveAddr
	if addr == "" {
		addr = a.cfg.Server.Addr
	}

	a.logger.Info("starting server", slog.String("addr", addr))
	server := web.New(a.tasks, a.sessions, a.projects, a.logger)
	return server.Run(addr)
}
