package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/landackn/landbot/internal/db"
	"github.com/landackn/landbot/internal/territory"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load reference datasets",
}

var loadTerritoriesCmd = &cobra.Command{
	Use:   "territories <shapefile>",
	Short: "Load indigenous territory polygons from a shapefile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := db.Connect(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		n, err := territory.LoadShapefile(ctx, pool, args[0])
		if err != nil {
			return err
		}

		zap.L().Info("territories loaded", zap.Int("records", n))
		return nil
	},
}

var loadGazetteerCmd = &cobra.Command{
	Use:   "gazetteer <csv>",
	Short: "Load ZIP-code gazetteer records from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := db.Connect(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		n, err := territory.LoadGazetteerCSV(ctx, pool, args[0])
		if err != nil {
			return err
		}

		zap.L().Info("gazetteer loaded", zap.Int64("records", n))
		return nil
	},
}

func init() {
	loadCmd.AddCommand(loadTerritoriesCmd)
	loadCmd.AddCommand(loadGazetteerCmd)
	rootCmd.AddCommand(loadCmd)
}
