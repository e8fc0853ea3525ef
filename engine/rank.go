package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/corpatlas-org/corpatlas/dataset"
)

// ============================================================================
// RANKING — Filter by continent, sort by metric, truncate to topN
// ============================================================================
// Single-pass filter producing an index list into the dataset — no row copy
// until the final, at-most-topN materialization. The sort is stable: ties
// keep their original dataset order.
// ============================================================================

// RankByMetric returns the topN companies of a continent ordered by a metric,
// descending. Continent matching is exact and case-sensitive. An unmatched
// continent yields an empty result; out-of-range topN or an invalid metric
// is rejected with ErrInvalidParameter.
func RankByMetric(ds *dataset.Dataset, continent string, metric Metric, topN int) ([]dataset.CompanyRecord, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: metric %d out of range", ErrInvalidParameter, metric)
	}
	if topN < MinTopN || topN > MaxTopN {
		return nil, fmt.Errorf("%w: topN %d outside [%d,%d]", ErrInvalidParameter, topN, MinTopN, MaxTopN)
	}

	indices := filterContinent(ds, continent)
	sortByMetricDesc(ds, indices, metric)

	if len(indices) > topN {
		indices = indices[:topN]
	}

	out := make([]dataset.CompanyRecord, len(indices))
	for i, idx := range indices {
		out[i] = ds.At(idx)
	}
	return out, nil
}

// filterContinent returns the indices of records whose Continent equals the
// requested value exactly.
func filterContinent(ds *dataset.Dataset, continent string) []int {
	n := ds.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if ds.At(i).Continent == continent {
			indices = append(indices, i)
		}
	}
	return indices
}

// sortByMetricDesc stable-sorts an index list by metric value, descending.
// Absent cells sink below every present value.
func sortByMetricDesc(ds *dataset.Dataset, indices []int, metric Metric) {
	key := metric.Key()
	sort.SliceStable(indices, func(a, b int) bool {
		return metricSortValue(ds.At(indices[a]), key) > metricSortValue(ds.At(indices[b]), key)
	})
}

func metricSortValue(r dataset.CompanyRecord, key string) float64 {
	v := r.Numeric(key)
	if !v.Valid {
		return math.Inf(-1)
	}
	return v.Value
}
