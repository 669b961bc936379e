package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gramseva/census-atlas/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "census-atlas",
	Short: "Demographic choropleth engine",
	Long:  "Loads administrative area boundaries, synthesizes per-segment census metrics, and derives classified, ranked, color-mapped views for the map UI.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
