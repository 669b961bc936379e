package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gramseva/census-atlas/internal/catalog"
	"github.com/gramseva/census-atlas/internal/config"
	"github.com/gramseva/census-atlas/internal/engine"
	"github.com/gramseva/census-atlas/internal/metrics"
	"github.com/gramseva/census-atlas/internal/model"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the area catalog and generate the metric table",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, table, err := buildSnapshot(cfg)
		if err != nil {
			return err
		}

		fmt.Printf("dataset %s\n", table.DatasetID)
		fmt.Printf("  areas: %d\n", len(snap.Areas))
		fmt.Printf("  keys per area: %d\n", len(model.AllSelections()))
		fmt.Printf("  seed: %d\n", table.Seed)
		return nil
	},
}

// buildSnapshot runs the one-time startup load: catalog, then synthetic
// generation over the surviving areas.
func buildSnapshot(cfg *config.Config) (*engine.Snapshot, *metrics.Table, error) {
	areas, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return nil, nil, eris.Wrap(err, "load catalog")
	}
	if len(areas) == 0 {
		return nil, nil, eris.Wrapf(catalog.ErrLoadFailure, "no areas survived filtering in %s", cfg.Catalog.Source)
	}

	zap.L().Info("catalog loaded",
		zap.String("source", cfg.Catalog.Source),
		zap.String("format", cfg.Catalog.Format),
		zap.Int("areas", len(areas)),
	)

	table, err := metrics.Generate(areas, metrics.GenerateOptions{
		Seed:        cfg.Dataset.Seed,
		Random:      cfg.Dataset.Random,
		Concurrency: cfg.Dataset.Concurrency,
	})
	if err != nil {
		return nil, nil, eris.Wrap(err, "generate metrics")
	}

	return &engine.Snapshot{Areas: areas, Repo: table}, table, nil
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
