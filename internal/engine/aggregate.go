package engine

import (
	"errors"
	"math"

	"github.com/rotisserie/eris"

	"github.com/gramseva/census-atlas/internal/metrics"
	"github.com/gramseva/census-atlas/internal/model"
)

// ErrEmptyInput reports an aggregation requested over zero areas. The
// aggregate is undefined there; callers get the error, never NaN.
var ErrEmptyInput = eris.New("engine: aggregate over empty area set")

// KPI is the summary statistic for one metric across all areas.
type KPI struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Aggregate computes average, min, and max of one metric across all areas
// at the active key. Missing vectors contribute zero and are recorded on
// missing. The average is rounded to 2 decimals; for population it is
// additionally floored to an integer. Min and max stay exact.
func Aggregate(metric model.Metric, key model.DemographicKey, areas []model.Area, repo metrics.Repository, missing *metrics.MissingRecorder) (KPI, error) {
	if len(areas) == 0 {
		return KPI{}, ErrEmptyInput
	}

	var sum, min, max float64
	for i, area := range areas {
		var value float64
		vec, err := repo.Get(area.ID, key)
		if err != nil {
			if errors.Is(err, metrics.ErrNotFound) {
				missing.Record(area.ID, key)
			}
		} else {
			value = vec.Value(metric)
		}

		sum += value
		if i == 0 || value < min {
			min = value
		}
		if i == 0 || value > max {
			max = value
		}
	}

	avg := round2(sum / float64(len(areas)))
	if metric == model.MetricPopulation {
		avg = math.Floor(avg)
	}

	return KPI{Average: avg, Min: min, Max: max}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
