package engine

import (
	"errors"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/gramseva/census-atlas/internal/metrics"
	"github.com/gramseva/census-atlas/internal/model"
)

// Entry is one row of the ranked-bar display.
type Entry struct {
	DisplayName string  `json:"display_name"`
	Value       float64 `json:"value"`
}

// Rank returns areas sorted descending by the active metric's value.
// Areas with no vector for the key are excluded entirely, unlike the
// aggregator and classifier: ranking a gap as zero would misrepresent
// data completeness in the ranked list. Exclusions are recorded on the
// recorder (nil disables diagnostics); any repository error other than
// a miss aborts the ranking. The sort is stable, so equal values keep
// catalog order.
func Rank(metric model.Metric, key model.DemographicKey, areas []model.Area, repo metrics.Repository, missing *metrics.MissingRecorder) ([]Entry, error) {
	entries := make([]Entry, 0, len(areas))
	for _, area := range areas {
		vec, err := repo.Get(area.ID, key)
		if err != nil {
			if errors.Is(err, metrics.ErrNotFound) {
				missing.Record(area.ID, key)
				continue
			}
			return nil, eris.Wrapf(err, "engine: rank %s", area.ID)
		}
		entries = append(entries, Entry{
			DisplayName: area.DisplayName,
			Value:       vec.Value(metric),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})

	return entries, nil
}
