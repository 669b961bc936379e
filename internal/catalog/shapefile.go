package catalog

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gramseva/census-atlas/internal/model"
)

// LoadShapefile reads polygon records from a shapefile, taking the stable
// id and display name from the named DBF fields. Records with a missing
// id, a nil shape, or a degenerate polygon are dropped before
// registration.
func LoadShapefile(path, idField, nameField string) ([]model.Area, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(ErrLoadFailure, "open shapefile %s: %v", path, err)
	}
	defer func() { _ = reader.Close() }()

	// Build field name → index map.
	fields := reader.Fields()
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}

	idIdx, ok := fieldIdx[strings.ToLower(idField)]
	if !ok {
		return nil, eris.Wrapf(ErrLoadFailure, "shapefile %s has no field %q", path, idField)
	}
	nameIdx, hasName := fieldIdx[strings.ToLower(nameField)]

	var areas []model.Area
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()

		poly, ok := shape.(*shp.Polygon)
		if !ok || len(poly.Points) == 0 {
			skipped++
			continue
		}

		id := attribute(reader, idIdx)
		if id == "" {
			skipped++
			continue
		}

		name := id
		if hasName {
			if n := attribute(reader, nameIdx); n != "" {
				name = n
			}
		}
		areas = append(areas, model.Area{ID: id, DisplayName: name})
	}

	if skipped > 0 {
		zap.L().Debug("catalog: skipped shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}

	return areas, nil
}

func attribute(reader *shp.Reader, idx int) string {
	return strings.TrimSpace(strings.TrimRight(reader.Attribute(idx), "\x00"))
}
