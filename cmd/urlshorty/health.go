package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Om-Mishra7/URL-Shortner/internal/store"
)

var healthTimeout time.Duration

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the configured record store and exit non-zero if it is unreachable",
	RunE: func(cmd *cobra.Command, _ []string) error {
		bindFlag(cmd, "STORE_URL", "store-url")
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
		defer cancel()

		st, err := store.Open(ctx, cfg.StoreURL)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Ping(ctx); err != nil {
			return fmt.Errorf("store unavailable: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Store connection OK")
		return nil
	},
}

func init() {
	healthCmd.Flags().DurationVar(&healthTimeout, "timeout", 5*time.Second, "probe timeout")
	rootCmd.AddCommand(healthCmd)
}
