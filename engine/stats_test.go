package engine

import (
	"math"
	"testing"

	"github.com/corpatlas-org/corpatlas/dataset"
)

// ============================================================================
// STATISTICS TESTS
// ============================================================================

func TestCorrelationSelfIsOne(t *testing.T) {
	ds := testDataset()

	corr := PearsonCorrelation(ds, "sales", "sales")
	if !corr.Defined {
		t.Fatal("self-correlation with variance should be defined")
	}
	if math.Abs(corr.Value-1.0) > 1e-9 {
		t.Errorf("corr(x, x) = %v, want 1.0", corr.Value)
	}
}

func TestCorrelationPerfectLinear(t *testing.T) {
	// profits = sales / 2: exactly linear.
	ds := dataset.FromRecords([]dataset.CompanyRecord{
		rec("A", "Asia", "", 2, 1, 0, 0),
		rec("B", "Asia", "", 4, 2, 0, 0),
		rec("C", "Asia", "", 8, 4, 0, 0),
	})

	corr := PearsonCorrelation(ds, "Sales ($billion)", "Profits ($billion)")
	if !corr.Defined {
		t.Fatal("should be defined")
	}
	if math.Abs(corr.Value-1.0) > 1e-9 {
		t.Errorf("corr = %v, want 1.0", corr.Value)
	}
	if corr.Pairs != 3 {
		t.Errorf("pairs = %d, want 3", corr.Pairs)
	}
}

func TestCorrelationConstantColumnUndefined(t *testing.T) {
	ds := dataset.FromRecords([]dataset.CompanyRecord{
		rec("A", "Asia", "", 5, 1, 0, 0),
		rec("B", "Asia", "", 5, 2, 0, 0),
		rec("C", "Asia", "", 5, 3, 0, 0),
	})

	corr := PearsonCorrelation(ds, "sales", "profits")
	if corr.Defined {
		t.Errorf("constant column must yield Undefined, got %v", corr.Value)
	}
	if corr.Value != 0 {
		t.Errorf("undefined correlation should carry zero value, got %v", corr.Value)
	}
}

func TestCorrelationTooFewPairs(t *testing.T) {
	ds := dataset.FromRecords([]dataset.CompanyRecord{
		rec("A", "Asia", "", 5, 1, 0, 0),
	})
	if corr := PearsonCorrelation(ds, "sales", "profits"); corr.Defined {
		t.Error("a single observation must yield Undefined")
	}
}

func TestCorrelationExcludesMissingPairs(t *testing.T) {
	records := []dataset.CompanyRecord{
		rec("A", "Asia", "", 2, 1, 0, 0),
		{Company: "B", Continent: "Asia", Sales: dataset.Present(100)}, // profits absent
		rec("C", "Asia", "", 4, 2, 0, 0),
		rec("D", "Asia", "", 8, 4, 0, 0),
	}
	ds := dataset.FromRecords(records)

	corr := PearsonCorrelation(ds, "sales", "profits")
	if !corr.Defined {
		t.Fatal("should be defined")
	}
	if corr.Pairs != 3 {
		t.Errorf("pairs = %d, want 3 (row with absent profits excluded)", corr.Pairs)
	}
	if math.Abs(corr.Value-1.0) > 1e-9 {
		t.Errorf("corr = %v, want 1.0 over the complete pairs", corr.Value)
	}
}

func TestCorrelationUnknownColumnUndefined(t *testing.T) {
	ds := testDataset()
	if corr := PearsonCorrelation(ds, "sales", "NoSuchColumn"); corr.Defined {
		t.Error("unknown column must yield Undefined")
	}
}

func TestSafeColumnMeans(t *testing.T) {
	ds := dataset.FromRecords([]dataset.CompanyRecord{
		rec("A", "Asia", "", 10, 2, 0, 0),
		rec("B", "Asia", "", 20, 4, 0, 0),
	})

	means, ok := SafeColumnMeans(ds, []string{"Sales ($billion)", "Profits ($billion)"})
	if !ok {
		t.Fatal("all columns resolve; fallback should not fire")
	}
	if got := means["Sales ($billion)"]; got != 15 {
		t.Errorf("mean sales = %v, want 15", got)
	}
	if got := means["Profits ($billion)"]; got != 3 {
		t.Errorf("mean profits = %v, want 3", got)
	}
}

func TestSafeColumnMeansAllOrNothingFallback(t *testing.T) {
	ds := testDataset()

	// One bad column zeroes every requested mean, not just its own.
	means, ok := SafeColumnMeans(ds, []string{"Sales ($billion)", "NoSuchColumn"})
	if ok {
		t.Fatal("fallback flag should be false when any column fails")
	}
	if len(means) != 2 {
		t.Fatalf("means has %d entries, want 2", len(means))
	}
	for name, v := range means {
		if v != 0 {
			t.Errorf("means[%q] = %v, want 0 under the all-or-nothing fallback", name, v)
		}
	}
}

func TestSafeColumnMeansTextColumnTriggersFallback(t *testing.T) {
	ds := testDataset()

	// "Company" resolves in the schema but is not numeric — same fallback.
	means, ok := SafeColumnMeans(ds, []string{"Sales ($billion)", "Company"})
	if ok {
		t.Fatal("text column should trigger the fallback")
	}
	if means["Sales ($billion)"] != 0 {
		t.Error("sales mean should be zeroed by the batch fallback")
	}
}

func TestSafeColumnMeansSkipsAbsentValues(t *testing.T) {
	records := []dataset.CompanyRecord{
		rec("A", "Asia", "", 10, 0, 0, 0),
		{Company: "B", Continent: "Asia"}, // sales absent
		rec("C", "Asia", "", 20, 0, 0, 0),
	}
	ds := dataset.FromRecords(records)

	means, ok := SafeColumnMeans(ds, []string{"sales"})
	if !ok {
		t.Fatal("fallback should not fire")
	}
	if got := means["sales"]; got != 15 {
		t.Errorf("mean = %v, want 15 (absent cell excluded, not imputed)", got)
	}
}

func TestScatterDataExcludesIncompletePairs(t *testing.T) {
	records := []dataset.CompanyRecord{
		rec("A", "Asia", "", 2, 1, 0, 0),
		{Company: "B", Continent: "Asia", Sales: dataset.Present(3)},
		rec("C", "Europe", "", 4, 2, 0, 0),
	}
	ds := dataset.FromRecords(records)

	points := ScatterData(ds, MetricSales, MetricProfits)
	if len(points) != 2 {
		t.Fatalf("len = %d, want 2", len(points))
	}
	if points[0].Company != "A" || points[1].Company != "C" {
		t.Errorf("points = %+v, want A then C in dataset order", points)
	}
	if points[1].X != 4 || points[1].Y != 2 {
		t.Errorf("point C = (%v, %v), want (4, 2)", points[1].X, points[1].Y)
	}
}
