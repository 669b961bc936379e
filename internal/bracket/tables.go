package bracket

import (
	"math"

	"github.com/gramseva/census-atlas/internal/model"
)

var literacyTable = MustValidate(Table{
	{Label: "<70%", Lower: 0, Upper: 70, Color: "#d73027"},
	{Label: "70-80%", Lower: 70, Upper: 80, Color: "#fc8d59"},
	{Label: "80-90%", Lower: 80, Upper: 90, Color: "#91cf60"},
	{Label: "≥90%", Lower: 90, Upper: math.Inf(1), Color: "#1a9850"},
})

var incomeTable = MustValidate(Table{
	{Label: "<₹30k", Lower: 0, Upper: 30_000, Color: "#d73027"},
	{Label: "₹30k-50k", Lower: 30_000, Upper: 50_000, Color: "#fc8d59"},
	{Label: "₹50k-80k", Lower: 50_000, Upper: 80_000, Color: "#91cf60"},
	{Label: "≥₹80k", Lower: 80_000, Upper: math.Inf(1), Color: "#1a9850"},
})

var populationTable = MustValidate(Table{
	{Label: "<10k", Lower: 0, Upper: 10_000, Color: "#eff3ff"},
	{Label: "10k-100k", Lower: 10_000, Upper: 100_000, Color: "#bdd7e7"},
	{Label: "100k-500k", Lower: 100_000, Upper: 500_000, Color: "#6baed6"},
	{Label: "≥500k", Lower: 500_000, Upper: math.Inf(1), Color: "#2171b5"},
})

// For returns the authoritative table for a metric. Unknown metrics are a
// programming error.
func For(m model.Metric) Table {
	switch m {
	case model.MetricLiteracy:
		return literacyTable
	case model.MetricIncome:
		return incomeTable
	case model.MetricPopulation:
		return populationTable
	}
	panic("bracket: no table for metric " + string(m))
}
