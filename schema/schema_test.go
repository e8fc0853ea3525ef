package schema

import "testing"

// ============================================================================
// SCHEMA TESTS
// ============================================================================

func TestColumnKeyResolvesHeadersAndKeys(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"exact key", "market_value", "market_value"},
		{"raw header", "Market Value ($billion)", "market_value"},
		{"sales header", "Sales ($billion)", "sales"},
		{"latitude header", "Latitude_final", "latitude"},
		{"longitude header", "Longitude_final", "longitude"},
		{"plain text column", "Company", "company"},
		{"mixed spacing", "  Profits ($billion) ", "profits"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ColumnKey(tc.in)
			if !ok {
				t.Fatalf("ColumnKey(%q) not resolved", tc.in)
			}
			if got != tc.want {
				t.Errorf("ColumnKey(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestColumnKeyRejectsUnknown(t *testing.T) {
	for _, name := range []string{"NoSuchColumn", "Revenue", "", "Global Rank"} {
		if _, ok := ColumnKey(name); ok {
			t.Errorf("ColumnKey(%q) should not resolve", name)
		}
	}
}

func TestMetricKeys(t *testing.T) {
	keys := MetricKeys()
	want := []string{"sales", "profits", "assets", "market_value"}
	if len(keys) != len(want) {
		t.Fatalf("MetricKeys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("MetricKeys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestValidateFullHeader(t *testing.T) {
	headers := []string{
		"Global Rank", "Company", "Continent", "Country",
		"Sales ($billion)", "Profits ($billion)", "Assets ($billion)",
		"Market Value ($billion)", "Latitude_final", "Longitude_final",
	}
	if err := Validate(headers); err != nil {
		t.Fatalf("Validate failed on full header: %v", err)
	}
}

func TestValidateMissingColumn(t *testing.T) {
	headers := []string{"Company", "Continent", "Country", "Sales ($billion)"}
	err := Validate(headers)
	if err == nil {
		t.Fatal("Validate should fail when columns are missing")
	}

	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}

	found := false
	for _, issue := range verr.Issues {
		if issue.Column == "market_value" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing market_value not reported: %v", verr.Issues)
	}
}

func TestValidateDuplicateColumn(t *testing.T) {
	headers := []string{
		"Company", "Company", "Continent", "Country",
		"Sales ($billion)", "Profits ($billion)", "Assets ($billion)",
		"Market Value ($billion)", "Latitude_final", "Longitude_final",
	}
	if err := Validate(headers); err == nil {
		t.Fatal("Validate should fail on duplicate Company column")
	}
}

func TestHeaderIndexSkipsUnknownColumns(t *testing.T) {
	headers := []string{"Global Rank", "Company", "Continent"}
	idx := HeaderIndex(headers)

	if got, ok := idx["company"]; !ok || got != 1 {
		t.Errorf("idx[company] = %d (%v), want 1", got, ok)
	}
	if _, ok := idx["global_rank"]; ok {
		t.Error("unknown column should not appear in index")
	}
}
