package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ============================================================================
// VIEW CONTROLLER — Input state → chart specs
// ============================================================================
// Holds the single FilterState and reacts to the two input events:
//
//   OnSiteChanged  → both charts (the proportion chart depends on the site)
//   OnRangeChanged → scatter only (the proportion chart ignores the range)
//
// Each trigger runs read-state → filter → aggregate → emit under one lock,
// so a reader never sees a half-updated state and recomputations never
// overlap. Every emitted spec carries a per-chart Revision that increases
// with each emission; a Renderer keeping results must drop lower revisions.
// ============================================================================

// Renderer is the output boundary: it receives every chart spec the
// controller emits.
type Renderer interface {
	Render(spec ChartSpec)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(spec ChartSpec)

func (f RendererFunc) Render(spec ChartSpec) { f(spec) }

// ErrEmptyView is returned when a controller is built over no records.
var ErrEmptyView = errors.New("dataset has no records")

// Controller owns the dashboard's FilterState.
type Controller struct {
	mu        sync.Mutex
	pipeline  *Pipeline
	sink      Renderer
	state     FilterState
	revisions map[ChartKind]uint64
	logger    *slog.Logger
}

// NewController creates a controller over view with the initial state
// {AllSites, full dataset payload range}. Nothing is emitted until Refresh
// or the first input event.
func NewController(view RecordView, sink Renderer, opts ...Option) (*Controller, error) {
	if view == nil || view.Len() == 0 {
		return nil, ErrEmptyView
	}
	if sink == nil {
		return nil, errors.New("controller needs a renderer")
	}
	cfg := applyOptions(opts)
	if cfg.sites.Len() == 0 {
		cfg.logger.Warn("no known sites configured, only ALL can be selected")
	}

	c := &Controller{
		pipeline:  NewPipeline(view, cfg.sites),
		sink:      sink,
		revisions: make(map[ChartKind]uint64, len(Kinds)),
		logger:    cfg.logger,
	}
	c.state = FilterState{Site: AllSites, Payload: c.pipeline.Full()}
	if cfg.initialRange != nil {
		if !cfg.initialRange.Valid() {
			return nil, fmt.Errorf("%w: initial [%g, %g]", ErrInvalidRange, cfg.initialRange.Min, cfg.initialRange.Max)
		}
		c.state.Payload = *cfg.initialRange
	}
	return c, nil
}

// State returns a copy of the current selection.
func (c *Controller) State() FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pipeline returns the controller's read-only pipeline.
func (c *Controller) Pipeline() *Pipeline { return c.pipeline }

// Refresh emits both charts for the current state.
func (c *Controller) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.emit(c.state, Kinds...)
}

// OnSiteChanged replaces the selected site and recomputes both charts.
//
// A site outside the known set is recorded as the selection, and both charts
// are emitted in their error state; the returned error wraps ErrInvalidFilter.
func (c *Controller) OnSiteChanged(site string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := FilterState{Site: site, Payload: c.state.Payload}
	c.state = next
	c.logger.Debug("site changed", slog.String("site", site))
	return c.emit(next, KindProportion, KindScatter)
}

// OnRangeChanged replaces the payload range and recomputes the scatter chart.
//
// An invalid range is rejected before any filtering: the previous state is
// kept, nothing is emitted, and the returned error wraps ErrInvalidRange.
// Only range errors are returned. A valid range is stored even while the
// selected site is unknown; the scatter chart is then emitted in its error
// state, as it was by OnSiteChanged.
func (c *Controller) OnRangeChanged(r PayloadRange) error {
	if !r.Valid() {
		c.logger.Warn("range rejected", slog.Float64("min", r.Min), slog.Float64("max", r.Max))
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, r.Min, r.Max)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := FilterState{Site: c.state.Site, Payload: r}
	c.state = next
	c.logger.Debug("range changed", slog.Float64("min", r.Min), slog.Float64("max", r.Max))
	_ = c.emit(next, KindScatter)
	return nil
}

// emit computes and renders each kind for state. Callers hold c.mu.
// Failing charts are rendered in their error state; the first error is returned.
func (c *Controller) emit(state FilterState, kinds ...ChartKind) error {
	var first error
	for _, kind := range kinds {
		spec, err := c.pipeline.Compute(state, kind)
		if err != nil {
			spec = c.pipeline.ErrorChart(kind, state, err)
			if first == nil {
				first = err
			}
			c.logger.Warn("chart in error state", slog.String("chart", string(kind)), slog.Any("error", err))
		}
		c.revisions[kind]++
		spec.Revision = c.revisions[kind]
		c.sink.Render(spec)
	}
	return first
}
