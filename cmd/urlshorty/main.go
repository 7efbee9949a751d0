package main

import (
	"os"

	"github.com/Om-Mishra7/URL-Shortner/internal/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
