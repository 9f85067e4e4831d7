package engine

import (
	"io"
	"log/slog"
)

// ============================================================================
// CONTROLLER OPTIONS — Functional options for NewController()
// ============================================================================

// Option configures controller behavior via functional options pattern.
type Option func(*config)

type config struct {
	sites        SiteSet
	logger       *slog.Logger
	initialRange *PayloadRange
}

// WithSites sets the fixed known-site set. Without it the set is empty and
// AllSites is the only selection OnSiteChanged accepts.
func WithSites(sites SiteSet) Option {
	return func(c *config) {
		c.sites = sites
	}
}

// WithLogger sets the logger used for trigger tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithInitialRange overrides the initial payload range, which otherwise spans
// the whole dataset.
func WithInitialRange(r PayloadRange) Option {
	return func(c *config) {
		c.initialRange = &r
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return cfg
}
