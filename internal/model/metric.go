package model

import "github.com/rotisserie/eris"

// Metric identifies one of the tracked statistics.
type Metric string

const (
	MetricLiteracy   Metric = "literacy"
	MetricIncome     Metric = "income"
	MetricPopulation Metric = "population"
)

// Metrics returns all metrics in display order.
func Metrics() []Metric {
	return []Metric{MetricLiteracy, MetricIncome, MetricPopulation}
}

// ParseMetric validates a metric name from an external surface (CLI flag,
// query parameter).
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricLiteracy, MetricIncome, MetricPopulation:
		return Metric(s), nil
	}
	return "", eris.Errorf("model: unknown metric %q", s)
}

// MetricVector holds the three tracked statistics for one Area at one
// DemographicKey.
type MetricVector struct {
	Literacy   float64 `json:"literacy"`   // percentage in [0,100]
	Income     int64   `json:"income"`     // annual, rupees
	Population int64   `json:"population"`
}

// Value returns the vector component for a metric. Unknown metrics are a
// programming error.
func (v MetricVector) Value(m Metric) float64 {
	switch m {
	case MetricLiteracy:
		return v.Literacy
	case MetricIncome:
		return float64(v.Income)
	case MetricPopulation:
		return float64(v.Population)
	}
	panic("model: unknown metric " + string(m))
}
