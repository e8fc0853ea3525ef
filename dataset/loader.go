package dataset

import (
	"fmt"
	"os"
	"sync"
)

// ============================================================================
// LOADER — One-time, memoized dataset load
// ============================================================================
// The dataset is static for the life of a process: the first Load reads and
// parses the source, every later call returns the same *Dataset (or the same
// error). There is no invalidation — a fresh process re-reads the file once.
// ============================================================================

// LoadError reports a failure to produce a usable Dataset from a source.
// It is fatal to the caller; the engine has no recovery for a missing,
// unreadable, or empty source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader memoizes a single CSV load. Safe for concurrent use.
type Loader struct {
	path string

	once sync.Once
	ds   *Dataset
	err  error
}

// NewLoader creates a loader for a CSV file path. Nothing is read until the
// first Load call.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and parses the source on first call, then returns the cached
// Dataset. The result is identical for every call within a process.
func (l *Loader) Load() (*Dataset, error) {
	l.once.Do(func() {
		data, err := os.ReadFile(l.path)
		if err != nil {
			l.err = &LoadError{Source: l.path, Err: err}
			return
		}

		ds, err := ParseCSV(data)
		if err != nil {
			l.err = &LoadError{Source: l.path, Err: err}
			return
		}
		l.ds = ds
	})
	return l.ds, l.err
}
