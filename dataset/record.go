package dataset

import "github.com/corpatlas-org/corpatlas/schema"

// ============================================================================
// DATASET — Immutable in-memory collection of company records
// ============================================================================
// Loaded once per process (see Loader) and never mutated afterwards. All
// engine operations are reads, so a Dataset is safe to share across
// goroutines without locking.
// ============================================================================

// Float is a numeric cell that may be absent in the source. Coordinates are
// missing for a number of companies; metric cells are occasionally blank in
// hand-fixed exports. Absence is data, not an error.
type Float struct {
	Value float64
	Valid bool
}

// Present wraps a known-good value.
func Present(v float64) Float {
	return Float{Value: v, Valid: true}
}

// CompanyRecord is one row of the companies dataset.
type CompanyRecord struct {
	GlobalRank int // position in the source export, 1-based; 0 if absent

	Company   string
	Continent string
	Country   string

	Sales       Float
	Profits     Float
	Assets      Float
	MarketValue Float

	Latitude  Float
	Longitude Float
}

// Numeric returns the record's cell for a canonical numeric column key.
// Unknown keys return an absent Float.
func (r CompanyRecord) Numeric(key string) Float {
	switch key {
	case "sales":
		return r.Sales
	case "profits":
		return r.Profits
	case "assets":
		return r.Assets
	case "market_value":
		return r.MarketValue
	case "latitude":
		return r.Latitude
	case "longitude":
		return r.Longitude
	}
	return Float{}
}

// HasCoordinates reports whether both latitude and longitude are present.
func (r CompanyRecord) HasCoordinates() bool {
	return r.Latitude.Valid && r.Longitude.Valid
}

// Dataset is an ordered, immutable collection of CompanyRecord.
type Dataset struct {
	records []CompanyRecord
}

// FromRecords wraps a record slice as a Dataset. The caller hands over
// ownership — the slice must not be mutated afterwards.
func FromRecords(records []CompanyRecord) *Dataset {
	return &Dataset{records: records}
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// At returns the record at index i.
func (d *Dataset) At(i int) CompanyRecord { return d.records[i] }

// Records returns the backing slice. Read-only by convention; rankings and
// filters work on index lists instead of copying rows.
func (d *Dataset) Records() []CompanyRecord { return d.records }

// Column materializes a numeric column by canonical key. The second return
// is false when the key is not a numeric column of the schema.
func (d *Dataset) Column(key string) ([]Float, bool) {
	col, ok := schema.Lookup(key)
	if !ok || col.Role == schema.RoleText {
		return nil, false
	}
	out := make([]Float, len(d.records))
	for i, r := range d.records {
		out[i] = r.Numeric(key)
	}
	return out, true
}

// Continents returns the distinct Continent values in first-seen order.
func (d *Dataset) Continents() []string {
	seen := make(map[string]bool)
	var result []string
	for _, r := range d.records {
		if r.Continent != "" && !seen[r.Continent] {
			seen[r.Continent] = true
			result = append(result, r.Continent)
		}
	}
	return result
}
