package engine

import (
	"fmt"

	"github.com/corpatlas-org/corpatlas/dataset"
	"github.com/corpatlas-org/corpatlas/schema"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from a ranked subset
// ============================================================================

// BuildTable renders a ranked subset as a summary table: identity columns,
// then every metric column in schema order, with a total line for the ranked
// metric.
func BuildTable(params Params, ranked []dataset.CompanyRecord) *TableData {
	table := &TableData{
		Title:   rankTitle(params, len(ranked)),
		Columns: tableColumns(),
		Rows:    make([][]string, 0, len(ranked)),
	}
	if len(ranked) == 0 {
		return table
	}

	rankedKey := params.Metric.Key()
	var total float64

	for i, r := range ranked {
		row := []string{
			fmt.Sprintf("%d", i+1),
			r.Company,
			r.Country,
			r.Continent,
		}
		for _, key := range schema.MetricKeys() {
			row = append(row, formatCell(r.Numeric(key)))
		}
		table.Rows = append(table.Rows, row)
		total += r.Numeric(rankedKey).Value
	}

	table.Summary = &Summary{
		Label: fmt.Sprintf("Total (%d companies)", len(ranked)),
		Values: map[string]string{
			rankedKey: fmt.Sprintf("%.2f", total),
		},
	}
	return table
}

func tableColumns() []Column {
	columns := []Column{
		{Key: "rank", Label: "#", Type: "number", Align: "right"},
		{Key: "company", Label: "Company", Type: "text", Align: "left"},
		{Key: "country", Label: "Country", Type: "text", Align: "left"},
		{Key: "continent", Label: "Continent", Type: "text", Align: "left"},
	}
	for _, key := range schema.MetricKeys() {
		col, _ := schema.Lookup(key)
		columns = append(columns, Column{
			Key:   key,
			Label: col.DisplayName,
			Type:  "number",
			Align: "right",
		})
	}
	return columns
}

// formatCell renders a numeric cell; absent cells show as "-".
func formatCell(f dataset.Float) string {
	if !f.Valid {
		return "-"
	}
	return fmt.Sprintf("%.2f", f.Value)
}
