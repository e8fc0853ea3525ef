package engine

import (
	"fmt"

	"github.com/corpatlas-org/corpatlas/dataset"
)

// ============================================================================
// CHART BUILDER — Produces BarChart data from a ranked subset
// ============================================================================
// Data only. The consumer decides how bars become pixels.
// ============================================================================

// BuildBarChart produces horizontal-bar data for a ranked subset, highest
// value first. Returns nil when the subset is empty — nothing to draw.
func BuildBarChart(params Params, ranked []dataset.CompanyRecord) *BarChart {
	if len(ranked) == 0 {
		return nil
	}

	chart := &BarChart{
		Title:  rankTitle(params, len(ranked)),
		XLabel: params.Metric.Header(),
		YLabel: "Company",
		Bars:   make([]Bar, 0, len(ranked)),
	}

	key := params.Metric.Key()
	for _, r := range ranked {
		chart.Bars = append(chart.Bars, Bar{
			Label: r.Company,
			Value: r.Numeric(key).Value,
		})
	}
	return chart
}

// rankTitle builds the "Top N Companies in X by Y" heading. When fewer rows
// matched than requested, the count reflects what is actually shown.
func rankTitle(params Params, shown int) string {
	n := params.TopN
	if shown < n {
		n = shown
	}
	return fmt.Sprintf("Top %d Companies in %s by %s", n, params.Continent, params.Metric.Header())
}
