package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Om-Mishra7/URL-Shortner/internal/app"
	"github.com/Om-Mishra7/URL-Shortner/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().Int("port", 0, "HTTP port (env PORT, default 8080)")
		c.Flags().String("base-url", "", "public base URL for short links (env BASE_URL)")
	}
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	bindFlag(cmd, "PORT", "port")
	bindFlag(cmd, "BASE_URL", "base-url")
	bindFlag(cmd, "STORE_URL", "store-url")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn().Err(err).Msg("close store")
		}
	}()

	logger.Info().
		Str("addr", a.Addr()).
		Str("base_url", cfg.BaseURL).
		Str("env", cfg.Env).
		Str("version", version).
		Msg("urlshorty listening")

	// Blocking; returns after SIGINT/SIGTERM and a graceful shutdown.
	return a.Run(ctx)
}
