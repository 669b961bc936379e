// Package metrics holds the metric repository: the read-only table of
// per-area, per-segment metric vectors and its synthetic population.
package metrics

import (
	"github.com/rotisserie/eris"

	"github.com/gramseva/census-atlas/internal/model"
)

// ErrNotFound reports that no metric vector exists for an (area, key) pair.
// Every catalog area should have a vector for every producible key, so a
// miss is a data-integrity defect; aggregate computations recover locally
// by treating the value as zero and recording the miss.
var ErrNotFound = eris.New("metrics: vector not found")

// Repository answers point lookups of metric vectors.
type Repository interface {
	Get(areaID string, key model.DemographicKey) (model.MetricVector, error)
}

// Table is the in-memory Repository. Populated once at startup and
// read-only afterwards, so concurrent reads need no locking.
type Table struct {
	// DatasetID identifies one generated table across log lines and
	// API responses.
	DatasetID string
	// Seed is the generation seed; zero-valued in random mode.
	Seed int64

	vectors map[string]map[model.DemographicKey]model.MetricVector
}

// NewTable wraps an already-materialized vector table, e.g. one loaded from
// an external source. The caller must not mutate vectors afterwards.
func NewTable(datasetID string, seed int64, vectors map[string]map[model.DemographicKey]model.MetricVector) *Table {
	return &Table{DatasetID: datasetID, Seed: seed, vectors: vectors}
}

// Get returns the vector for an (area, key) pair or ErrNotFound.
func (t *Table) Get(areaID string, key model.DemographicKey) (model.MetricVector, error) {
	byKey, ok := t.vectors[areaID]
	if !ok {
		return model.MetricVector{}, eris.Wrapf(ErrNotFound, "area %s", areaID)
	}
	v, ok := byKey[key]
	if !ok {
		return model.MetricVector{}, eris.Wrapf(ErrNotFound, "area %s key %s", areaID, key)
	}
	return v, nil
}

// Len returns the number of areas with at least one vector.
func (t *Table) Len() int {
	return len(t.vectors)
}

// delete removes one (area, key) entry. Test hook for exercising the
// missing-data policies against an otherwise complete table.
func (t *Table) delete(areaID string, key model.DemographicKey) {
	if byKey, ok := t.vectors[areaID]; ok {
		delete(byKey, key)
	}
}
