package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/corpatlas-org/corpatlas/dataset"
)

// ============================================================================
// EXECUTOR — One interaction, one call, one Result
// ============================================================================
// Pipeline:
//   1. Validate params (reject, never clamp)
//   2. Filter + rank + truncate
//   3. Build chart and table data from the ranked subset
//   4. Scatter, correlation text, map points, column means over the full set
//
// All computation is local and read-only. The dataset is shared state only
// in the trivial sense — nothing mutates it, so no locking is needed.
// ============================================================================

// Execute runs one query against a Dataset and returns a render-ready
// Result. This is the engine's primary entry point; each consumer
// interaction maps to exactly one call.
func Execute(params Params, ds *dataset.Dataset, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)

	if err := params.Validate(); err != nil {
		return nil, err
	}

	ranked, err := RankByMetric(ds, params.Continent, params.Metric, params.TopN)
	if err != nil {
		return nil, err
	}

	if cfg.Logger != nil {
		cfg.Logger.WithFields(logrus.Fields{
			"continent": params.Continent,
			"metric":    params.Metric.Key(),
			"top_n":     params.TopN,
			"matched":   len(ranked),
			"dataset":   ds.Len(),
		}).Debug("query executed")
	}

	result := &Result{
		Params:  params,
		Ranked:  rankedRows(ranked, params.Metric),
		Chart:   BuildBarChart(params, ranked),
		Table:   BuildTable(params, ranked),
		Summary: buildSummary(params, len(ranked)),
	}

	if !cfg.SkipScatter {
		result.Scatter = ScatterData(ds, params.XAxis, params.YAxis)
	}
	if !cfg.SkipMap {
		result.Map = MapPoints(ds)
	}

	result.Correlation = PearsonCorrelation(ds, params.XAxis.Key(), params.YAxis.Key())
	result.Relationship = DescribeRelationship(ds, params.XAxis, params.YAxis)
	result.Means, result.MeansExact = BuildAverages(ds)

	return result, nil
}

// rankedRows converts records into display rows with 1-based rank positions.
func rankedRows(ranked []dataset.CompanyRecord, metric Metric) []RankedCompany {
	key := metric.Key()
	rows := make([]RankedCompany, len(ranked))
	for i, r := range ranked {
		rows[i] = RankedCompany{
			Rank:    i + 1,
			Company: r.Company,
			Country: r.Country,
			Value:   r.Numeric(key).Value,
		}
	}
	return rows
}
