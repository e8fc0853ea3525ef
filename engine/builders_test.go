package engine

import (
	"strings"
	"testing"

	"github.com/corpatlas-org/corpatlas/dataset"
)

// ============================================================================
// BUILDER TESTS — chart, table, text
// ============================================================================

func asiaParams() Params {
	return Params{
		Continent: "Asia",
		Metric:    MetricSales,
		TopN:      5,
		XAxis:     MetricSales,
		YAxis:     MetricProfits,
	}
}

func TestBuildBarChart(t *testing.T) {
	ds := testDataset()
	ranked, err := RankByMetric(ds, "Asia", MetricSales, 5)
	if err != nil {
		t.Fatalf("RankByMetric failed: %v", err)
	}

	chart := BuildBarChart(asiaParams(), ranked)
	if chart == nil {
		t.Fatal("chart should not be nil for a non-empty subset")
	}

	if want := "Top 4 Companies in Asia by Sales ($billion)"; chart.Title != want {
		t.Errorf("title = %q, want %q", chart.Title, want)
	}
	if chart.XLabel != "Sales ($billion)" || chart.YLabel != "Company" {
		t.Errorf("labels = %q/%q", chart.XLabel, chart.YLabel)
	}

	if len(chart.Bars) != 4 {
		t.Fatalf("bars = %d, want 4", len(chart.Bars))
	}
	if chart.Bars[0].Label != "Beta" || chart.Bars[0].Value != 30 {
		t.Errorf("top bar = %+v, want Beta/30", chart.Bars[0])
	}
	for i := 1; i < len(chart.Bars); i++ {
		if chart.Bars[i].Value > chart.Bars[i-1].Value {
			t.Error("bars should descend")
		}
	}
}

func TestBuildBarChartEmpty(t *testing.T) {
	if chart := BuildBarChart(asiaParams(), nil); chart != nil {
		t.Error("empty subset should produce nil chart")
	}
}

func TestBuildTable(t *testing.T) {
	ds := testDataset()
	ranked, err := RankByMetric(ds, "Asia", MetricSales, 5)
	if err != nil {
		t.Fatalf("RankByMetric failed: %v", err)
	}

	table := BuildTable(asiaParams(), ranked)

	// rank + company + country + continent + four metrics
	if len(table.Columns) != 8 {
		t.Fatalf("columns = %d, want 8", len(table.Columns))
	}
	if len(table.Rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(table.Rows))
	}

	first := table.Rows[0]
	if first[0] != "1" || first[1] != "Beta" || first[2] != "China" {
		t.Errorf("first row = %v", first)
	}
	if first[4] != "30.00" {
		t.Errorf("first sales cell = %q, want 30.00", first[4])
	}

	if table.Summary == nil {
		t.Fatal("summary missing")
	}
	// 30 + 25 + 10 + 5
	if got := table.Summary.Values["sales"]; got != "70.00" {
		t.Errorf("summary total = %q, want 70.00", got)
	}
}

func TestBuildTableEmptySubset(t *testing.T) {
	table := BuildTable(asiaParams(), nil)
	if table == nil {
		t.Fatal("empty subset should still produce a table shell")
	}
	if len(table.Rows) != 0 || table.Summary != nil {
		t.Errorf("empty table should have no rows or summary: %+v", table)
	}
}

func TestDescribeRelationship(t *testing.T) {
	ds := dataset.FromRecords([]dataset.CompanyRecord{
		rec("A", "Asia", "", 2, 1, 0, 0),
		rec("B", "Asia", "", 4, 2, 0, 0),
	})

	got := DescribeRelationship(ds, MetricSales, MetricProfits)
	want := "Correlation between Sales ($billion) and Profits ($billion): 1.00"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDescribeRelationshipUndefined(t *testing.T) {
	ds := dataset.FromRecords([]dataset.CompanyRecord{
		rec("A", "Asia", "", 5, 1, 0, 0),
		rec("B", "Asia", "", 5, 2, 0, 0),
	})

	got := DescribeRelationship(ds, MetricSales, MetricProfits)
	if !strings.Contains(got, "undefined") {
		t.Errorf("constant column should read as undefined, got %q", got)
	}
}

func TestAveragesLine(t *testing.T) {
	ds := dataset.FromRecords([]dataset.CompanyRecord{
		rec("A", "Asia", "", 10, 2, 0, 0),
		rec("B", "Asia", "", 20, 4, 0, 0),
	})

	got := AveragesLine(ds)
	want := "Average Sales: 15.00B | Average Profit: 3.00B"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
