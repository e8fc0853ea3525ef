package engine

import "github.com/sirupsen/logrus"

// ============================================================================
// ENGINE OPTIONS — Functional options for Execute()
// ============================================================================

// Option configures Execute via functional options.
type Option func(*config)

type config struct {
	Logger      *logrus.Entry
	SkipScatter bool
	SkipMap     bool
}

// WithLogger routes the executor's progress logging through a structured
// entry. Without it, Execute stays silent.
func WithLogger(entry *logrus.Entry) Option {
	return func(c *config) {
		c.Logger = entry
	}
}

// WithoutScatter skips scatter-data computation for consumers that only
// need the ranked subset.
func WithoutScatter() Option {
	return func(c *config) {
		c.SkipScatter = true
	}
}

// WithoutMap skips map-point computation.
func WithoutMap() Option {
	return func(c *config) {
		c.SkipMap = true
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
