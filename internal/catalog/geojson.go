package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/gramseva/census-atlas/internal/model"
)

// LoadGeoJSON reads a feature collection and registers one Area per
// surviving polygonal feature. Features are dropped before registration
// when they have no usable id, a non-polygonal geometry, zero area, or an
// area above maxAreaSqDeg (0 disables the upper bound).
func LoadGeoJSON(path, idField, nameField string, maxAreaSqDeg float64) ([]model.Area, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(ErrLoadFailure, "read %s: %v", path, err)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrapf(ErrLoadFailure, "parse %s: %v", path, err)
	}

	var areas []model.Area
	var skipped int
	for _, f := range fc.Features {
		id := featureID(f, idField)
		if id == "" {
			skipped++
			continue
		}

		sqDeg, ok := polygonalArea(f.Geometry)
		if !ok || sqDeg == 0 {
			skipped++
			continue
		}
		if maxAreaSqDeg > 0 && sqDeg > maxAreaSqDeg {
			skipped++
			continue
		}

		name := propertyString(f.Properties, nameField)
		if name == "" {
			name = id
		}
		areas = append(areas, model.Area{ID: id, DisplayName: name})
	}

	if skipped > 0 {
		zap.L().Debug("catalog: skipped geojson features",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}

	return areas, nil
}

// polygonalArea returns the planar area of a polygonal geometry, or
// ok=false for non-polygonal geometry types. Ring winding varies by
// producer, so the signed area is taken absolute.
func polygonalArea(g geom.T) (float64, bool) {
	switch p := g.(type) {
	case *geom.Polygon:
		return math.Abs(p.Area()), true
	case *geom.MultiPolygon:
		return math.Abs(p.Area()), true
	}
	return 0, false
}

func featureID(f *geojson.Feature, idField string) string {
	if f.ID != "" {
		return f.ID
	}
	return propertyString(f.Properties, idField)
}

func propertyString(props map[string]interface{}, field string) string {
	switch v := props[field].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return ""
}
