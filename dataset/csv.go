package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/corpatlas-org/corpatlas/schema"
)

// ============================================================================
// CSV PARSER — Converts raw CSV bytes into a Dataset
// ============================================================================
// The caller reads the CSV from wherever it lives (file, blob store); this
// parser converts the bytes using the fixed schema. Header order does not
// matter, extra columns are skipped, malformed rows are dropped.
// ============================================================================

// ParseCSV parses CSV bytes into a Dataset. Fails when the header is missing
// required schema columns or when no data rows survive parsing.
func ParseCSV(data []byte) (*Dataset, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1 // hand-fixed exports have ragged rows

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	if err := schema.Validate(headers); err != nil {
		return nil, err
	}
	idx := schema.HeaderIndex(headers)

	// The rank column is outside the schema but worth keeping when present.
	rankIdx := -1
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		if norm == "global rank" || norm == "rank" {
			rankIdx = i
			break
		}
	}

	var records []CompanyRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}

		rec := CompanyRecord{
			Company:   cell(row, idx["company"]),
			Continent: cell(row, idx["continent"]),
			Country:   cell(row, idx["country"]),

			Sales:       numericCell(row, idx["sales"]),
			Profits:     numericCell(row, idx["profits"]),
			Assets:      numericCell(row, idx["assets"]),
			MarketValue: numericCell(row, idx["market_value"]),

			Latitude:  numericCell(row, idx["latitude"]),
			Longitude: numericCell(row, idx["longitude"]),
		}

		if rankIdx >= 0 {
			if n, err := strconv.Atoi(cell(row, rankIdx)); err == nil {
				rec.GlobalRank = n
			}
		}
		if rec.Company == "" {
			continue
		}

		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV has no data rows")
	}

	return FromRecords(records), nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// numericCell parses a numeric cell, tolerating thousands separators and a
// leading currency sign. Blank or unparseable cells are absent, not zero.
func numericCell(row []string, i int) Float {
	s := cell(row, i)
	if s == "" || strings.EqualFold(s, "n/a") || strings.EqualFold(s, "null") {
		return Float{}
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Float{}
	}
	return Present(f)
}
