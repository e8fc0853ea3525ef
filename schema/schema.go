package schema

import (
	"strings"
	"unicode"
)

// ============================================================================
// SCHEMA — Fixed column layout of the global companies dataset
// ============================================================================
// The source is a delimited-text export with a known header row. Columns are
// addressed everywhere else by canonical snake_case keys; this package owns
// the mapping from raw headers (and common aliases) to those keys.
// ============================================================================

// Role classifies what a column is used for.
type Role int

const (
	RoleText       Role = iota // identity/grouping columns
	RoleMetric                 // numeric financial columns, rankable
	RoleCoordinate             // geographic columns, may be absent per row
)

// Column describes one column of the company dataset.
type Column struct {
	Key         string // canonical key, e.g. "market_value"
	Header      string // exact header in the source file
	DisplayName string // human label for tables/charts
	Unit        string // "billion USD" for metrics, empty otherwise
	Role        Role
	Required    bool // header must be present for the load to succeed
}

// Columns is the fixed schema, in source-file order. The leading rank column
// carried by some exports is tolerated but not part of the contract.
var Columns = []Column{
	{Key: "company", Header: "Company", DisplayName: "Company", Role: RoleText, Required: true},
	{Key: "continent", Header: "Continent", DisplayName: "Continent", Role: RoleText, Required: true},
	{Key: "country", Header: "Country", DisplayName: "Country", Role: RoleText, Required: true},
	{Key: "sales", Header: "Sales ($billion)", DisplayName: "Sales", Unit: "billion USD", Role: RoleMetric, Required: true},
	{Key: "profits", Header: "Profits ($billion)", DisplayName: "Profits", Unit: "billion USD", Role: RoleMetric, Required: true},
	{Key: "assets", Header: "Assets ($billion)", DisplayName: "Assets", Unit: "billion USD", Role: RoleMetric, Required: true},
	{Key: "market_value", Header: "Market Value ($billion)", DisplayName: "Market Value", Unit: "billion USD", Role: RoleMetric, Required: true},
	{Key: "latitude", Header: "Latitude_final", DisplayName: "Latitude", Role: RoleCoordinate, Required: true},
	{Key: "longitude", Header: "Longitude_final", DisplayName: "Longitude", Role: RoleCoordinate, Required: true},
}

// byKey is built once at init from Columns.
var byKey = func() map[string]Column {
	m := make(map[string]Column, len(Columns))
	for _, c := range Columns {
		m[c.Key] = c
	}
	return m
}()

// Lookup returns the column for a canonical key.
func Lookup(key string) (Column, bool) {
	c, ok := byKey[key]
	return c, ok
}

// MetricKeys returns the keys of all rankable metric columns, in schema order.
func MetricKeys() []string {
	var keys []string
	for _, c := range Columns {
		if c.Role == RoleMetric {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// NumericKeys returns the keys of all numeric columns (metrics + coordinates).
func NumericKeys() []string {
	var keys []string
	for _, c := range Columns {
		if c.Role == RoleMetric || c.Role == RoleCoordinate {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// ColumnKey resolves a column name to its canonical key. It accepts the
// exact key ("market_value"), the raw source header ("Market Value
// ($billion)"), or any casing/spacing variant of either. Returns false for
// names outside the schema.
func ColumnKey(name string) (string, bool) {
	norm := Normalize(name)
	if _, ok := byKey[norm]; ok {
		return norm, true
	}
	return "", false
}

// Normalize converts a raw column name to canonical snake_case form:
// unit suffixes and the "_final" decoration are stripped, camelCase and
// spaces become underscores.
//
//	"Market Value ($billion)" → "market_value"
//	"Latitude_final"          → "latitude"
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "($billion)", "")
	name = strings.ReplaceAll(name, "($ billion)", "")
	name = toSnakeCase(name)
	name = strings.TrimSuffix(name, "_final")
	return name
}

// toSnakeCase converts "Column Name" or "columnName" → "column_name".
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			prev := rune(s[i-1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				b.WriteRune('_')
			}
		}
		b.WriteRune(r)
	}

	s = strings.ToLower(b.String())
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}
