package bracket

import (
	"errors"

	"github.com/gramseva/census-atlas/internal/metrics"
	"github.com/gramseva/census-atlas/internal/model"
)

// Count is one distribution segment: a bracket with its area membership.
type Count struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// Classify counts area membership per bracket for the active metric and
// key. Missing vectors contribute zero (recorded on missing) so the
// distribution always accounts for every catalog area. Output preserves
// table order, ascending by range; the proportion chart depends on that.
func Classify(metric model.Metric, key model.DemographicKey, areas []model.Area, repo metrics.Repository, missing *metrics.MissingRecorder) []Count {
	table := For(metric)

	counts := make([]Count, len(table))
	for i, b := range table {
		counts[i] = Count{Label: b.Label, Color: b.Color}
	}

	for _, area := range areas {
		var value float64
		vec, err := repo.Get(area.ID, key)
		if err != nil {
			if errors.Is(err, metrics.ErrNotFound) {
				missing.Record(area.ID, key)
			}
			// Zero-contribution recovery; lands in the first bracket.
		} else {
			value = vec.Value(metric)
		}
		counts[table.IndexOf(value)].Count++
	}

	return counts
}
