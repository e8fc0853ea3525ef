package schema

import (
	"fmt"
	"strings"
)

// ============================================================================
// HEADER VALIDATION — Checks a source header row against the fixed schema
// ============================================================================
// The loader calls Validate before parsing rows. Extra columns (e.g. the
// "Global Rank" column some exports carry) are tolerated; missing required
// columns fail the load.
// ============================================================================

// Issue describes a single header problem.
type Issue struct {
	Column string // canonical key of the affected column
	Reason string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Column, i.Reason)
}

// ValidationError aggregates all header issues found.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return "header validation failed: " + strings.Join(parts, "; ")
}

// Validate checks a raw header row against the required schema columns.
// Returns nil when every required column is present exactly once.
func Validate(headers []string) error {
	seen := make(map[string]int)
	for _, h := range headers {
		if key, ok := ColumnKey(h); ok {
			seen[key]++
		}
	}

	var issues []Issue
	for _, c := range Columns {
		if !c.Required {
			continue
		}
		switch n := seen[c.Key]; {
		case n == 0:
			issues = append(issues, Issue{Column: c.Key, Reason: fmt.Sprintf("required column %q not found", c.Header)})
		case n > 1:
			issues = append(issues, Issue{Column: c.Key, Reason: fmt.Sprintf("column %q appears %d times", c.Header, n)})
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// HeaderIndex maps each schema key to its position in the header row.
// Call Validate first; unknown headers are skipped, and on duplicate
// headers the first occurrence wins.
func HeaderIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(Columns))
	for i, h := range headers {
		key, ok := ColumnKey(h)
		if !ok {
			continue
		}
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}
