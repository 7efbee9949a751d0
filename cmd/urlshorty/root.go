package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Om-Mishra7/URL-Shortner/internal/config"
	"github.com/Om-Mishra7/URL-Shortner/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// v collects .env, environment and flag values for every command.
var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "urlshorty",
	Short: "urlshorty - URL shortener API",
	Long: `urlshorty turns long URLs into 7-character short links that redirect,
optionally expire after a number of seconds, and count their redirects.

Running without a subcommand starts the HTTP server.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.SetVersionTemplate("urlshorty version {{.Version}}\n")

	rootCmd.PersistentFlags().String("store-url", "", "record store: sqlite://path or redis://host:port/db (env STORE_URL)")
}

// loadConfig reads configuration and initializes logging from it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return config.Config{}, err
	}
	logger.Init(cfg.Env, cfg.LogLevel)
	return cfg, nil
}

// bindFlag binds a flag only when the user set it, so an empty flag default
// never masks the env/.env value.
func bindFlag(cmd *cobra.Command, key, name string) {
	if f := cmd.Flag(name); f != nil && f.Changed {
		v.Set(key, f.Value.String())
	}
}
