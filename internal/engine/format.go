package engine

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gramseva/census-atlas/internal/model"
)

// enIN groups digits the Indian way (1,00,000) for rupee and headcount
// display.
var enIN = message.NewPrinter(language.MustParse("en-IN"))

// FormatValue renders a metric value for tooltips and KPI panels:
// percentage for literacy, grouped rupees for income, grouped integer for
// population.
func FormatValue(m model.Metric, v float64) string {
	switch m {
	case model.MetricLiteracy:
		return fmt.Sprintf("%.2f%%", v)
	case model.MetricIncome:
		return enIN.Sprintf("₹%d", int64(math.Round(v)))
	case model.MetricPopulation:
		return enIN.Sprintf("%d", int64(math.Round(v)))
	}
	panic("engine: unknown metric " + string(m))
}

// KPIDisplay is the formatted KPI panel.
type KPIDisplay struct {
	Average string `json:"average"`
	Min     string `json:"min"`
	Max     string `json:"max"`
}

// DisplayKPI formats a KPI with the metric's display convention.
func DisplayKPI(m model.Metric, k KPI) KPIDisplay {
	return KPIDisplay{
		Average: FormatValue(m, k.Average),
		Min:     FormatValue(m, k.Min),
		Max:     FormatValue(m, k.Max),
	}
}

// Tooltip carries the per-area hover fields for the rendering layer.
// Contact is an externally assigned decoration; the engine leaves it
// empty.
type Tooltip struct {
	DisplayName string `json:"display_name"`
	Value       string `json:"value"`
	Contact     string `json:"contact,omitempty"`
}
