package dataset

import (
	"testing"
)

// ============================================================================
// CSV PARSER TESTS
// ============================================================================

// Header matching the real export, including the tolerated rank column.
var companiesCSV = []byte(`Global Rank,Company,Continent,Country,Sales ($billion),Profits ($billion),Assets ($billion),Market Value ($billion),Latitude_final,Longitude_final
1,ICBC,Asia,China,134.8,37.8,2813.5,237.3,39.9042,116.4074
2,China Construction Bank,Asia,China,113.1,30.6,2241.0,202.0,39.9042,116.4074
3,JPMorgan Chase,North America,United States,108.2,21.3,2359.1,191.4,40.7128,-74.0060
4,Berkshire Hathaway,North America,United States,178.8,19.5,493.4,308.7,41.2565,-95.9345
5,HSBC Holdings,Europe,United Kingdom,81.1,14.3,2671.3,192.6,51.5074,-0.1278
`)

func TestParseCSV(t *testing.T) {
	ds, err := ParseCSV(companiesCSV)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	if ds.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", ds.Len())
	}

	first := ds.At(0)
	if first.Company != "ICBC" {
		t.Errorf("first company = %q, want ICBC", first.Company)
	}
	if first.GlobalRank != 1 {
		t.Errorf("first rank = %d, want 1", first.GlobalRank)
	}
	if !first.Sales.Valid || first.Sales.Value != 134.8 {
		t.Errorf("first sales = %+v, want 134.8", first.Sales)
	}
	if !first.HasCoordinates() {
		t.Error("ICBC should have coordinates")
	}

	last := ds.At(4)
	if last.Continent != "Europe" || last.Country != "United Kingdom" {
		t.Errorf("last record = %q/%q, want Europe/United Kingdom", last.Continent, last.Country)
	}
	if last.Longitude.Value != -0.1278 {
		t.Errorf("last longitude = %v, want -0.1278", last.Longitude.Value)
	}
}

func TestParseCSVMissingCoordinates(t *testing.T) {
	csv := []byte(`Company,Continent,Country,Sales ($billion),Profits ($billion),Assets ($billion),Market Value ($billion),Latitude_final,Longitude_final
Acme,Asia,Japan,10.0,1.0,50.0,20.0,,
Globex,Asia,Japan,12.0,1.5,40.0,25.0,35.6762,139.6503
`)
	ds, err := ParseCSV(csv)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	if ds.At(0).HasCoordinates() {
		t.Error("Acme has blank coordinate cells, HasCoordinates should be false")
	}
	if !ds.At(1).HasCoordinates() {
		t.Error("Globex should have coordinates")
	}
}

func TestParseCSVThousandsSeparators(t *testing.T) {
	csv := []byte(`Company,Continent,Country,Sales ($billion),Profits ($billion),Assets ($billion),Market Value ($billion),Latitude_final,Longitude_final
BigCo,Asia,China,"1,234.5",37.8,"2,813.5",237.3,39.9,116.4
`)
	ds, err := ParseCSV(csv)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if got := ds.At(0).Sales.Value; got != 1234.5 {
		t.Errorf("sales = %v, want 1234.5", got)
	}
	if got := ds.At(0).Assets.Value; got != 2813.5 {
		t.Errorf("assets = %v, want 2813.5", got)
	}
}

func TestParseCSVMissingRequiredColumn(t *testing.T) {
	csv := []byte(`Company,Continent,Country,Sales ($billion)
Acme,Asia,Japan,10.0
`)
	if _, err := ParseCSV(csv); err == nil {
		t.Fatal("ParseCSV should fail when required columns are missing")
	}
}

func TestParseCSVNoDataRows(t *testing.T) {
	csv := []byte(`Company,Continent,Country,Sales ($billion),Profits ($billion),Assets ($billion),Market Value ($billion),Latitude_final,Longitude_final
`)
	if _, err := ParseCSV(csv); err == nil {
		t.Fatal("ParseCSV should fail on a header-only file")
	}
}

func TestContinentsFirstSeenOrder(t *testing.T) {
	ds, err := ParseCSV(companiesCSV)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	got := ds.Continents()
	want := []string{"Asia", "North America", "Europe"}
	if len(got) != len(want) {
		t.Fatalf("Continents() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Continents()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestColumnMaterialization(t *testing.T) {
	ds, err := ParseCSV(companiesCSV)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	col, ok := ds.Column("profits")
	if !ok {
		t.Fatal("profits column should resolve")
	}
	if len(col) != ds.Len() {
		t.Fatalf("column length %d, want %d", len(col), ds.Len())
	}
	if col[0].Value != 37.8 {
		t.Errorf("profits[0] = %v, want 37.8", col[0].Value)
	}

	if _, ok := ds.Column("company"); ok {
		t.Error("text column should not materialize as numeric")
	}
	if _, ok := ds.Column("no_such_column"); ok {
		t.Error("unknown column should not resolve")
	}
}
