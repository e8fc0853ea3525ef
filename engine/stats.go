package engine

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/corpatlas-org/corpatlas/dataset"
	"github.com/corpatlas-org/corpatlas/schema"
)

// ============================================================================
// STATISTICS — Correlation and safe column means
// ============================================================================
// Both operations read whole numeric columns. Rows with an absent value are
// excluded from the computation, never imputed.
// ============================================================================

// PearsonCorrelation computes the Pearson coefficient between two numeric
// columns, named by canonical key or source header. Rows missing either
// value are excluded. The result is Undefined (Defined=false) when fewer
// than 2 paired observations exist, when either column has zero variance,
// or when a column cannot be resolved.
func PearsonCorrelation(ds *dataset.Dataset, columnX, columnY string) Correlation {
	xs, ys, pairs := pairedColumns(ds, columnX, columnY)
	if pairs < 2 {
		return Correlation{Pairs: pairs}
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		// Zero variance in at least one column — mathematically undefined.
		return Correlation{Pairs: pairs}
	}

	return Correlation{Value: r, Defined: true, Pairs: pairs}
}

// pairedColumns collects the rows where both columns have a present value.
func pairedColumns(ds *dataset.Dataset, columnX, columnY string) (xs, ys []float64, pairs int) {
	keyX, okX := schema.ColumnKey(columnX)
	keyY, okY := schema.ColumnKey(columnY)
	if !okX || !okY {
		return nil, nil, 0
	}

	colX, okX := ds.Column(keyX)
	colY, okY := ds.Column(keyY)
	if !okX || !okY {
		return nil, nil, 0
	}

	for i := range colX {
		if colX[i].Valid && colY[i].Valid {
			xs = append(xs, colX[i].Value)
			ys = append(ys, colY[i].Value)
		}
	}
	return xs, ys, len(xs)
}

// SafeColumnMeans computes the arithmetic mean of each requested column over
// its present values. Result keys are the names exactly as requested.
//
// Fallback contract: if ANY requested name fails to resolve to a numeric
// column, EVERY entry in the result is 0 and ok is false. The batch succeeds
// or falls back as a unit; ok tells the caller which happened.
func SafeColumnMeans(ds *dataset.Dataset, columns []string) (map[string]float64, bool) {
	means := make(map[string]float64, len(columns))

	resolved := make([][]dataset.Float, len(columns))
	for i, name := range columns {
		key, ok := schema.ColumnKey(name)
		if !ok {
			return zeroMeans(columns), false
		}
		col, ok := ds.Column(key)
		if !ok {
			return zeroMeans(columns), false
		}
		resolved[i] = col
	}

	for i, name := range columns {
		means[name] = meanPresent(resolved[i])
	}
	return means, true
}

func zeroMeans(columns []string) map[string]float64 {
	means := make(map[string]float64, len(columns))
	for _, name := range columns {
		means[name] = 0
	}
	return means
}

// meanPresent averages the present values of a column. A column with no
// present values has mean 0.
func meanPresent(col []dataset.Float) float64 {
	vals := make([]float64, 0, len(col))
	for _, f := range col {
		if f.Valid {
			vals = append(vals, f.Value)
		}
	}
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}

// ScatterData returns the (x, y) metric pairs for all companies where both
// values are present, in dataset order.
func ScatterData(ds *dataset.Dataset, x, y Metric) []ScatterPoint {
	keyX, keyY := x.Key(), y.Key()

	points := make([]ScatterPoint, 0, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		r := ds.At(i)
		vx, vy := r.Numeric(keyX), r.Numeric(keyY)
		if !vx.Valid || !vy.Valid {
			continue
		}
		points = append(points, ScatterPoint{
			Company: r.Company,
			X:       vx.Value,
			Y:       vy.Value,
		})
	}
	return points
}
