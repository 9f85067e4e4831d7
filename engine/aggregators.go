package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ============================================================================
// AGGREGATORS — Proportion and scatter series via RecordView
// ============================================================================
// Pure and total: every function accepts any view, including an empty one.
// Grouping produces SubViews (index lists into the parent view).
// ============================================================================

// Proportion bucket labels for a single site.
const (
	LabelFailure = "Failure"
	LabelSuccess = "Success"
)

// AggregateProportion builds the proportion chart for a filtered view.
//
// For AllSites the view is grouped by site and each group's value is the sum
// of its 0/1 outcomes, i.e. its success count; one slice per site present,
// ordered by site name. For a single site the view is split into exactly two
// buckets, Failure then Success, counted by occurrence, both emitted even when
// zero. An empty view under AllSites yields no slices.
func AggregateProportion(view RecordView, site string, sites SiteSet) ChartSpec {
	spec := ChartSpec{
		Kind:  KindProportion,
		Title: proportionTitle(site, sites),
		Site:  site,
	}

	if site == AllSites {
		groups := groupBySingle(view, DimSite)
		for i := range groups {
			groups[i].Count = groups[i].View.Len()
			groups[i].Value = SumMeasure(groups[i].View, MeasureOutcome)
		}
		sortGroupsByKey(groups)
		spec.Slices = make([]ChartPoint, 0, len(groups))
		for _, g := range groups {
			spec.Slices = append(spec.Slices, ChartPoint{Label: g.Label, Value: g.Value})
		}
		return spec
	}

	successes := CountWhere(view, MeasureOutcome, 1)
	spec.Slices = []ChartPoint{
		{Label: LabelFailure, Value: float64(view.Len() - successes)},
		{Label: LabelSuccess, Value: float64(successes)},
	}
	return spec
}

// AggregateScatter builds the payload/outcome scatter chart for a filtered view.
// One point per record, in view order. The site only selects the title.
func AggregateScatter(view RecordView, site string, sites SiteSet) ChartSpec {
	n := view.Len()
	points := make([]ScatterPoint, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, ScatterPoint{
			X:     view.Measure(i, MeasurePayload),
			Y:     view.Measure(i, MeasureOutcome),
			Group: view.Dimension(i, DimBoosterCategory),
		})
	}
	return ChartSpec{
		Kind:   KindScatter,
		Title:  scatterTitle(site, sites),
		Site:   site,
		Points: points,
	}
}

func proportionTitle(site string, sites SiteSet) string {
	if site == AllSites {
		return "Total Successful Launches for All Sites"
	}
	return "Total Successful Launches by Site " + sites.Label(site)
}

func scatterTitle(site string, sites SiteSet) string {
	return "Correlation between Payload and Success for " + sites.Label(site)
}

// ============================================================================
// GROUPING
// ============================================================================

// groupBySingle groups a view by one dimension in first-appearance order.
func groupBySingle(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

// GroupBy groups a view by one dimension and counts each group.
// Groups keep first-appearance order.
func GroupBy(view RecordView, dimension string) []Group {
	groups := groupBySingle(view, dimension)
	for i := range groups {
		groups[i].Count = groups[i].View.Len()
		groups[i].Value = float64(groups[i].Count)
	}
	return groups
}

// ============================================================================
// MEASURES
// ============================================================================

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		total += view.Measure(i, measure)
	}
	return total
}

// CountWhere counts records whose measure equals want.
func CountWhere(view RecordView, measure string, want float64) int {
	n := 0
	for i := 0; i < view.Len(); i++ {
		if view.Measure(i, measure) == want {
			n++
		}
	}
	return n
}

// MeasureValues copies a named measure out of a view, in view order.
func MeasureValues(view RecordView, measure string) []float64 {
	xs := make([]float64, view.Len())
	for i := range xs {
		xs[i] = view.Measure(i, measure)
	}
	return xs
}

// Bounds returns the payload range spanning every record of a view, or the
// zero range for an empty view.
func Bounds(view RecordView) PayloadRange {
	xs := MeasureValues(view, MeasurePayload)
	if len(xs) == 0 {
		return PayloadRange{}
	}
	r := PayloadRange{Min: xs[0], Max: xs[0]}
	for _, x := range xs[1:] {
		r.Min = math.Min(r.Min, x)
		r.Max = math.Max(r.Max, x)
	}
	return r
}

// ============================================================================
// SORTING
// ============================================================================

// sortGroupsByKey orders groups by key, ascending. Equal keys keep grouping order.
func sortGroupsByKey(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// FormatNumber prints whole numbers without decimals and everything else with two.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LabelForDimension returns a human-readable label for a dimension or measure key.
func LabelForDimension(key string) string {
	switch key {
	case DimSite:
		return "Launch Site"
	case DimBoosterCategory:
		return "Booster Version Category"
	case MeasurePayload:
		return "Payload Mass (kg)"
	case MeasureOutcome:
		return "Outcome"
	}
	if key == "" {
		return ""
	}
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
