// Package catalog loads and filters area boundary sources into the Area
// records the engine consumes. Loading is the system's one external I/O
// step; a failed load is terminal and retry policy stays with the caller.
package catalog

import (
	"github.com/rotisserie/eris"

	"github.com/gramseva/census-atlas/internal/config"
	"github.com/gramseva/census-atlas/internal/model"
)

// ErrLoadFailure reports that the catalog source could not be read or
// parsed. Surfaced as-is; the loader never retries.
var ErrLoadFailure = eris.New("catalog: load failure")

// Load reads the configured source and returns the surviving areas in
// source order.
func Load(cfg config.CatalogConfig) ([]model.Area, error) {
	switch cfg.Format {
	case "geojson":
		return LoadGeoJSON(cfg.Source, cfg.IDField, cfg.NameField, cfg.MaxAreaSqDeg)
	case "shapefile":
		return LoadShapefile(cfg.Source, cfg.IDField, cfg.NameField)
	case "sqlite":
		return LoadSQLite(cfg.Source)
	}
	return nil, eris.Wrapf(ErrLoadFailure, "unknown catalog format %q", cfg.Format)
}
