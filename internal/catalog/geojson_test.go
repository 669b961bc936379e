package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureFC = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"district_id": "d1", "district_name": "Adilabad"},
			"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}
		},
		{
			"type": "Feature",
			"properties": {"district_id": "d2", "district_name": "Degenerate"},
			"geometry": {"type": "Polygon", "coordinates": [[[5,5],[5,5],[5,5],[5,5]]]}
		},
		{
			"type": "Feature",
			"properties": {"district_id": "d3", "district_name": "Point"},
			"geometry": {"type": "Point", "coordinates": [1,1]}
		},
		{
			"type": "Feature",
			"properties": {"district_name": "No ID"},
			"geometry": {"type": "Polygon", "coordinates": [[[2,2],[3,2],[3,3],[2,3],[2,2]]]}
		},
		{
			"type": "Feature",
			"properties": {"district_id": 504},
			"geometry": {"type": "Polygon", "coordinates": [[[4,4],[5,4],[5,5],[4,5],[4,4]]]}
		},
		{
			"type": "Feature",
			"properties": {"district_id": "d6", "district_name": "Oversized"},
			"geometry": {"type": "Polygon", "coordinates": [[[0,0],[20,0],[20,20],[0,20],[0,0]]]}
		}
	]
}`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "districts.geojson")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGeoJSON(t *testing.T) {
	path := writeFixture(t, fixtureFC)

	areasOut, err := LoadGeoJSON(path, "district_id", "district_name", 100)
	require.NoError(t, err)

	// Degenerate, non-polygonal, id-less, and oversized features are
	// filtered before registration.
	require.Len(t, areasOut, 2)

	assert.Equal(t, "d1", areasOut[0].ID)
	assert.Equal(t, "Adilabad", areasOut[0].DisplayName)

	// Numeric id property is accepted; missing name falls back to the id.
	assert.Equal(t, "504", areasOut[1].ID)
	assert.Equal(t, "504", areasOut[1].DisplayName)
}

func TestLoadGeoJSONNoUpperBound(t *testing.T) {
	path := writeFixture(t, fixtureFC)

	areasOut, err := LoadGeoJSON(path, "district_id", "district_name", 0)
	require.NoError(t, err)
	require.Len(t, areasOut, 3, "zero max keeps oversized shapes")
	assert.Equal(t, "d6", areasOut[2].ID)
}

func TestLoadGeoJSONFailures(t *testing.T) {
	_, err := LoadGeoJSON(filepath.Join(t.TempDir(), "absent.geojson"), "id", "name", 0)
	assert.ErrorIs(t, err, ErrLoadFailure)

	path := writeFixture(t, `{"type": "FeatureCollection", "features": [`)
	_, err = LoadGeoJSON(path, "id", "name", 0)
	assert.ErrorIs(t, err, ErrLoadFailure)
}

func TestLoadUnknownFormat(t *testing.T) {
	_, err := Load(configFor("x", "kml"))
	assert.ErrorIs(t, err, ErrLoadFailure)
}

func TestLoadShapefileMissing(t *testing.T) {
	_, err := LoadShapefile(filepath.Join(t.TempDir(), "absent.shp"), "id", "name")
	assert.ErrorIs(t, err, ErrLoadFailure)
}
