package engine

import (
	"fmt"

	"github.com/corpatlas-org/corpatlas/dataset"
)

// ============================================================================
// TEXT BUILDER — Human-readable statements about the dataset
// ============================================================================

// DescribeRelationship returns a statement about the correlation between two
// metrics, e.g. "Correlation between Sales ($billion) and Profits
// ($billion): 0.95". An undefined coefficient is reported as such.
func DescribeRelationship(ds *dataset.Dataset, x, y Metric) string {
	corr := PearsonCorrelation(ds, x.Key(), y.Key())
	if !corr.Defined {
		return fmt.Sprintf("Correlation between %s and %s: undefined (%d paired observations)",
			x.Header(), y.Header(), corr.Pairs)
	}
	return fmt.Sprintf("Correlation between %s and %s: %.2f", x.Header(), y.Header(), corr.Value)
}

// meansColumns are the columns summarized in the averages line, keyed by the
// short labels the summary uses.
var meansColumns = []struct {
	Label  string
	Column string
}{
	{"Sales", "Sales ($billion)"},
	{"Profit", "Profits ($billion)"},
}

// BuildAverages computes the averages line inputs: mean Sales and Profits
// keyed by short label. The bool mirrors SafeColumnMeans' fallback flag.
func BuildAverages(ds *dataset.Dataset) (map[string]float64, bool) {
	columns := make([]string, len(meansColumns))
	for i, mc := range meansColumns {
		columns[i] = mc.Column
	}

	raw, ok := SafeColumnMeans(ds, columns)

	labeled := make(map[string]float64, len(meansColumns))
	for i, mc := range meansColumns {
		labeled[mc.Label] = raw[columns[i]]
	}
	return labeled, ok
}

// AveragesLine formats the summary line shown under the table, e.g.
// "Average Sales: 23.41B | Average Profit: 1.52B".
func AveragesLine(ds *dataset.Dataset) string {
	means, _ := BuildAverages(ds)
	return fmt.Sprintf("Average Sales: %.2fB | Average Profit: %.2fB",
		means["Sales"], means["Profit"])
}

// buildSummary is the default one-line reply for a query result.
func buildSummary(params Params, shown int) string {
	if shown == 0 {
		return fmt.Sprintf("No companies found in %q.", params.Continent)
	}
	return fmt.Sprintf("Showing %d companies in %s ranked by %s.",
		shown, params.Continent, params.Metric)
}
