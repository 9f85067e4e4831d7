package engine

import (
	"fmt"
)

// ============================================================================
// PIPELINE — FilterEngine → AggregationEngine for one chart
// ============================================================================
// Compute(state, kind):
//   1. Validate the selection against the known sites and the range rules
//   2. Derive the FilteredView for the chart's inputs
//   3. Aggregate into a ChartSpec
//
// The proportion chart depends only on the site, so it is always filtered
// over the dataset's full payload range. The scatter chart uses the state's
// range. Nothing here mutates the view or retains the result.
// ============================================================================

// Pipeline computes chart specs from a read-only view.
type Pipeline struct {
	view  RecordView
	sites SiteSet
	full  PayloadRange
}

// NewPipeline binds a view and the known-site set.
// The dataset's full payload range is measured once here.
func NewPipeline(view RecordView, sites SiteSet) *Pipeline {
	return &Pipeline{view: view, sites: sites, full: Bounds(view)}
}

// Full returns the payload range spanning the whole dataset.
func (p *Pipeline) Full() PayloadRange { return p.full }

// Sites returns the known-site set.
func (p *Pipeline) Sites() SiteSet { return p.sites }

// View returns the unfiltered dataset view.
func (p *Pipeline) View() RecordView { return p.view }

// Compute runs one chart's filter and aggregation for state.
func (p *Pipeline) Compute(state FilterState, kind ChartKind) (ChartSpec, error) {
	switch kind {
	case KindProportion:
		filtered, err := Filter(p.view, FilterState{Site: state.Site, Payload: p.full}, p.sites)
		if err != nil {
			return ChartSpec{}, err
		}
		return AggregateProportion(filtered, state.Site, p.sites), nil

	case KindScatter:
		filtered, err := Filter(p.view, state, p.sites)
		if err != nil {
			return ChartSpec{}, err
		}
		return AggregateScatter(filtered, state.Site, p.sites), nil
	}
	return ChartSpec{}, fmt.Errorf("unknown chart kind %q", kind)
}

// ErrorChart returns the error-state spec for a chart: no data, Err set.
func (p *Pipeline) ErrorChart(kind ChartKind, state FilterState, err error) ChartSpec {
	spec := ChartSpec{Kind: kind, Site: state.Site, Err: err.Error()}
	switch kind {
	case KindProportion:
		spec.Title = "Total Successful Launches"
	case KindScatter:
		spec.Title = "Correlation between Payload and Success"
	}
	return spec
}
