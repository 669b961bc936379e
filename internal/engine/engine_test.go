package engine

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramseva/census-atlas/internal/bracket"
	"github.com/gramseva/census-atlas/internal/model"
)

func literacySnapshot() *Snapshot {
	return &Snapshot{
		Areas: areas("d1", "d2", "d3"),
		Repo: repoWith(map[string]model.MetricVector{
			"d1": {Literacy: 65},
			"d2": {Literacy: 82},
			"d3": {Literacy: 91},
		}),
	}
}

func TestEngineNotReady(t *testing.T) {
	eng := New()
	assert.False(t, eng.Ready())

	_, err := eng.View(model.MetricLiteracy, model.DefaultSelection())
	assert.ErrorIs(t, err, ErrNotReady)

	_, err = eng.Areas()
	assert.ErrorIs(t, err, ErrNotReady)

	_, err = eng.ColorFor(model.MetricLiteracy, "d1", model.DefaultSelection())
	assert.ErrorIs(t, err, ErrNotReady)
}

// A failed startup load must be distinguishable from one still running:
// after SetLoadError every accessor returns that error, not ErrNotReady.
func TestEngineLoadErrorSupersedesNotReady(t *testing.T) {
	loadErr := eris.New("catalog: read boundaries.geojson")

	eng := New()
	eng.SetLoadError(loadErr)
	assert.False(t, eng.Ready())

	_, err := eng.View(model.MetricLiteracy, model.DefaultSelection())
	assert.ErrorIs(t, err, loadErr)
	assert.NotErrorIs(t, err, ErrNotReady)

	_, err = eng.Areas()
	assert.ErrorIs(t, err, loadErr)

	_, err = eng.ColorFor(model.MetricLiteracy, "d1", model.DefaultSelection())
	assert.ErrorIs(t, err, loadErr)
}

// A snapshot published after a recorded failure wins: the engine serves.
func TestEngineSnapshotSupersedesLoadError(t *testing.T) {
	eng := New()
	eng.SetLoadError(eris.New("transient"))
	eng.SetSnapshot(literacySnapshot())

	areas, err := eng.Areas()
	require.NoError(t, err)
	assert.Len(t, areas, 3)
}

func TestEngineView(t *testing.T) {
	eng := New()
	eng.SetSnapshot(literacySnapshot())
	require.True(t, eng.Ready())

	view, err := eng.View(model.MetricLiteracy, model.DefaultSelection())
	require.NoError(t, err)

	assert.Equal(t, model.MetricLiteracy, view.Metric)
	assert.Equal(t, model.DemographicKey("g:all|a:all|c:all|e:all"), view.Key)
	assert.Equal(t, 79.33, view.KPI.Average)
	assert.Equal(t, "79.33%", view.KPIDisplay.Average)
	assert.Len(t, view.Ranking, 3)
	assert.Len(t, view.Fills, 3)

	// Polygon fill and distribution segment come from one table.
	table := bracket.For(model.MetricLiteracy)
	assert.Equal(t, table.ColorOf(65), view.Fills["d1"])
	assert.Equal(t, table.ColorOf(82), view.Fills["d2"])
	assert.Equal(t, table.ColorOf(91), view.Fills["d3"])

	assert.Equal(t, "65.00%", view.Tooltips["d1"].Value)
	assert.Empty(t, view.Tooltips["d1"].Contact, "contact decoration is external")
}

func TestEngineMemoizesPerMetricAndKey(t *testing.T) {
	eng := New()
	eng.SetSnapshot(literacySnapshot())

	first, err := eng.View(model.MetricLiteracy, model.DefaultSelection())
	require.NoError(t, err)
	second, err := eng.View(model.MetricLiteracy, model.DefaultSelection())
	require.NoError(t, err)
	assert.Same(t, first, second, "repeat derivation returns the memoized view")

	other, err := eng.View(model.MetricIncome, model.DefaultSelection())
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}

func TestEngineColorFor(t *testing.T) {
	eng := New()
	eng.SetSnapshot(literacySnapshot())

	color, err := eng.ColorFor(model.MetricLiteracy, "d2", model.DefaultSelection())
	require.NoError(t, err)
	assert.Equal(t, bracket.For(model.MetricLiteracy).ColorOf(82), color)

	// Missing vector: neutral fill plus a recorded diagnostic.
	color, err = eng.ColorFor(model.MetricLiteracy, "dX", model.DefaultSelection())
	require.NoError(t, err)
	assert.Equal(t, bracket.NoDataColor, color)

	missing := eng.Missing()
	require.Len(t, missing, 1)
	assert.Equal(t, "dX", missing[0].AreaID)
}

func TestEngineViewMissingAreaFills(t *testing.T) {
	snap := &Snapshot{
		Areas: areas("d1", "dX"),
		Repo: repoWith(map[string]model.MetricVector{
			"d1": {Literacy: 82},
		}),
	}
	eng := New()
	eng.SetSnapshot(snap)

	view, err := eng.View(model.MetricLiteracy, model.DefaultSelection())
	require.NoError(t, err)

	assert.Equal(t, bracket.NoDataColor, view.Fills["dX"])
	assert.Equal(t, "no data", view.Tooltips["dX"].Value)
	assert.Len(t, view.Ranking, 1, "missing area excluded from ranking")
}
