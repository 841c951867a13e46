package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/landackn/landbot/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "landbot",
	Short: "Text a place, learn whose land it is",
	Long:  "Resolves free-text or ZIP-code location queries against a local gazetteer and the Mapbox geocoder, then answers with the indigenous land(s) at the resolved point.",
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
