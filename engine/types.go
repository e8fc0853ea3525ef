package engine

import (
	"errors"
	"fmt"

	"github.com/corpatlas-org/corpatlas/schema"
)

// ============================================================================
// ENGINE TYPES — Company-Dataset Query Layer
// ============================================================================
// The engine is a set of pure functions over an immutable dataset.Dataset.
// Nothing here mutates the dataset, performs I/O, or holds state between
// calls, so every operation is safe to invoke concurrently.
// ============================================================================

// TopN bounds. Values outside the range are rejected, not clamped.
const (
	MinTopN = 5
	MaxTopN = 50
)

// ErrInvalidParameter is returned when query parameters violate the engine
// contract (topN out of range, unknown metric). An unmatched continent is
// NOT a parameter error — it yields an empty result.
var ErrInvalidParameter = errors.New("invalid parameter")

// ============================================================================
// METRIC — Enumerated financial ranking columns
// ============================================================================

// Metric identifies one of the four rankable financial columns.
type Metric int

const (
	MetricSales Metric = iota
	MetricProfits
	MetricAssets
	MetricMarketValue
)

// Metrics lists all valid metrics in schema order.
var Metrics = []Metric{MetricSales, MetricProfits, MetricAssets, MetricMarketValue}

// Key returns the metric's canonical dataset column key.
func (m Metric) Key() string {
	switch m {
	case MetricSales:
		return "sales"
	case MetricProfits:
		return "profits"
	case MetricAssets:
		return "assets"
	case MetricMarketValue:
		return "market_value"
	}
	return ""
}

// String returns the metric's display name, e.g. "Market Value".
func (m Metric) String() string {
	if col, ok := schema.Lookup(m.Key()); ok {
		return col.DisplayName
	}
	return "Unknown"
}

// Header returns the source-file column header, e.g. "Market Value ($billion)".
func (m Metric) Header() string {
	if col, ok := schema.Lookup(m.Key()); ok {
		return col.Header
	}
	return ""
}

// Valid reports whether m is one of the enumerated metrics.
func (m Metric) Valid() bool {
	return m >= MetricSales && m <= MetricMarketValue
}

// ParseMetric resolves a metric from a canonical key, a source header, or a
// display-name variant.
func ParseMetric(name string) (Metric, error) {
	key, ok := schema.ColumnKey(name)
	if !ok {
		return 0, fmt.Errorf("%w: unknown metric %q", ErrInvalidParameter, name)
	}
	for _, m := range Metrics {
		if m.Key() == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: column %q is not a rankable metric", ErrInvalidParameter, name)
}

// ============================================================================
// PARAMS — One query, one call
// ============================================================================

// Params describes a single query. Each consumer interaction (a changed
// filter, a moved slider) maps to exactly one Execute call with a fresh
// Params — there is no implicit re-run model.
type Params struct {
	Continent string `json:"continent"`
	Metric    Metric `json:"metric"`
	TopN      int    `json:"topN"`

	// Scatter/correlation axis pair. Defaults to Sales vs Profits.
	XAxis Metric `json:"xAxis"`
	YAxis Metric `json:"yAxis"`
}

// Validate checks the params against the engine contract.
func (p Params) Validate() error {
	if !p.Metric.Valid() {
		return fmt.Errorf("%w: metric %d out of range", ErrInvalidParameter, p.Metric)
	}
	if p.TopN < MinTopN || p.TopN > MaxTopN {
		return fmt.Errorf("%w: topN %d outside [%d,%d]", ErrInvalidParameter, p.TopN, MinTopN, MaxTopN)
	}
	if !p.XAxis.Valid() || !p.YAxis.Valid() {
		return fmt.Errorf("%w: axis metric out of range", ErrInvalidParameter)
	}
	return nil
}

// ============================================================================
// RESULT — Render-ready output for one query
// ============================================================================

// Result bundles everything a presentation layer needs to redraw after one
// interaction. Consumers pick the pieces they render; the engine computes
// the data, never the pixels.
type Result struct {
	Params Params `json:"params"`

	Ranked  []RankedCompany `json:"ranked"`
	Chart   *BarChart       `json:"chart,omitempty"`
	Table   *TableData      `json:"table,omitempty"`
	Scatter []ScatterPoint  `json:"scatter,omitempty"`
	Map     *MapData        `json:"map,omitempty"`

	Correlation  Correlation        `json:"correlation"`
	Relationship string             `json:"relationship"`
	Means        map[string]float64 `json:"means"`
	MeansExact   bool               `json:"meansExact"` // false when the zero-fallback fired
	Summary      string             `json:"summary"`
}

// RankedCompany is one row of a ranked result.
type RankedCompany struct {
	Rank    int     `json:"rank"` // 1-based within this result
	Company string  `json:"company"`
	Country string  `json:"country"`
	Value   float64 `json:"value"` // the ranked metric's value
}

// Correlation is a Pearson coefficient that may be mathematically undefined
// (fewer than 2 paired observations, or zero variance). Defined=false is a
// valid result, never an error and never a silent 0.
type Correlation struct {
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
	Pairs   int     `json:"pairs"` // paired observations used
}

// ScatterPoint is one (x, y) metric pair for the scatter data.
type ScatterPoint struct {
	Company string  `json:"company"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// BarChart is horizontal-bar data for a ranked subset, highest first.
type BarChart struct {
	Title  string `json:"title"`
	XLabel string `json:"xLabel"`
	YLabel string `json:"yLabel"`
	Bars   []Bar  `json:"bars"`
}

// Bar is a single labeled bar.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData is a render-ready summary table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// MAP TYPES
// ============================================================================

// MapData holds scatter-layer points plus the initial viewport.
type MapData struct {
	Points   []MapPoint `json:"points"`
	Viewport Viewport   `json:"viewport"`
}

// MapPoint is one company with known coordinates.
type MapPoint struct {
	Company     string  `json:"company"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	MarketValue float64 `json:"marketValue"`
}

// Viewport centers the map over the plotted points.
type Viewport struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      float64 `json:"zoom"`
}
