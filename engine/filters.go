package engine

import (
	"errors"
	"fmt"
)

// ============================================================================
// FILTERS — Site and payload filtering via RecordView
// ============================================================================
// Single pass per constraint, each returning a SubView over the input, so
// row order always follows the dataset.
// ============================================================================

var (
	// ErrInvalidFilter is returned for a site selection outside the known set.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidRange is returned for a payload range that is not finite or has min > max.
	ErrInvalidRange = errors.New("invalid payload range")
)

// Filter derives the FilteredView for state.
//
// AllSites keeps every site; any other selection must be a member of sites
// and restricts to records at exactly that site. The payload restriction is
// inclusive on both ends. An empty result is not an error.
func Filter(view RecordView, state FilterState, sites SiteSet) (RecordView, error) {
	if err := validateState(state, sites); err != nil {
		return nil, err
	}
	return ApplyRange(restrictSite(view, state.Site), MeasurePayload, state.Payload), nil
}

func validateState(state FilterState, sites SiteSet) error {
	if !sites.Valid(state.Site) {
		return fmt.Errorf("%w: unknown site %q", ErrInvalidFilter, state.Site)
	}
	if !state.Payload.Valid() {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, state.Payload.Min, state.Payload.Max)
	}
	return nil
}

// restrictSite keeps records at site, or every record for AllSites.
// Site names are matched exactly.
func restrictSite(view RecordView, site string) RecordView {
	if site == AllSites {
		return view
	}
	return ApplyFilters(view, map[string][]string{DimSite: {site}})
}

// ApplyRange returns a view of records whose measure lies within r, bounds included.
func ApplyRange(view RecordView, measure string, r PayloadRange) RecordView {
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if r.Contains(view.Measure(i, measure)) {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}

// ApplyFilters returns a view of records matching all dimension filters.
// Dimensions are AND-combined; values within a dimension are OR-combined.
// An empty filter returns the original view.
func ApplyFilters(view RecordView, filters map[string][]string) RecordView {
	sets := make(map[string]map[string]bool)
	for dim, allowed := range filters {
		if len(allowed) > 0 {
			sets[dim] = toSet(allowed)
		}
	}
	if len(sets) == 0 {
		return view
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for dim, set := range sets {
			if !set[view.Dimension(i, dim)] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
