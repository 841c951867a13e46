package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/landackn/landbot/internal/db"
	"github.com/landackn/landbot/internal/territory"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the gazetteer schema, tables, and extensions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := db.Connect(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := territory.Migrate(ctx, pool); err != nil {
			return err
		}

		zap.L().Info("schema migrated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
