package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ── Test Data ─────────────────────────────────────────────────────────────────

func launch(site string, payload, outcome float64, booster string) Record {
	return Record{
		Dimensions: map[string]string{DimSite: site, DimBoosterCategory: booster},
		Measures:   map[string]float64{MeasurePayload: payload, MeasureOutcome: outcome},
	}
}

// launchRecords: X has 2 successes / 1 failure, Y has 1 success / 3 failures.
func launchRecords() []Record {
	return []Record{
		launch("Y", 500, 0, "v1.0"),
		launch("X", 2500, 1, "FT"),
		launch("X", 4000, 0, "v1.1"),
		launch("Y", 3000, 1, "FT"),
		launch("X", 9600, 1, "B4"),
		launch("Y", 6000, 0, "v1.1"),
		launch("Y", 700, 0, "v1.0"),
	}
}

func launchView() RecordView { return NewSliceView(launchRecords()) }

func launchSites() SiteSet { return NewSiteSet("X", "Y") }

var fullRange = PayloadRange{Min: 500, Max: 9600}

func payloads(view RecordView) []float64 { return MeasureValues(view, MeasurePayload) }

// ============================================================================
// FILTER ENGINE
// ============================================================================

func TestFilterAllSitesInclusiveRange(t *testing.T) {
	got, err := Filter(launchView(), FilterState{Site: AllSites, Payload: PayloadRange{Min: 700, Max: 4000}}, launchSites())
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	want := []float64{2500, 4000, 3000, 700}
	if diff := cmp.Diff(want, payloads(got)); diff != "" {
		t.Errorf("payloads mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterSpecificSite(t *testing.T) {
	got, err := Filter(launchView(), FilterState{Site: "X", Payload: PayloadRange{Min: 0, Max: 5000}}, launchSites())
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if diff := cmp.Diff([]float64{2500, 4000}, payloads(got)); diff != "" {
		t.Errorf("payloads mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterProperties(t *testing.T) {
	view := launchView()
	sites := launchSites()
	ranges := []PayloadRange{
		fullRange,
		{Min: 0, Max: 0},
		{Min: 2500, Max: 2500},
		{Min: 600, Max: 5000},
		{Min: 9600, Max: 20000},
	}
	for _, site := range []string{AllSites, "X", "Y"} {
		for _, r := range ranges {
			state := FilterState{Site: site, Payload: r}
			got, err := Filter(view, state, sites)
			if err != nil {
				t.Fatalf("Filter(%+v): %v", state, err)
			}
			for i := 0; i < got.Len(); i++ {
				if site != AllSites && got.Dimension(i, DimSite) != site {
					t.Errorf("%+v: record %d has site %q", state, i, got.Dimension(i, DimSite))
				}
				if p := got.Measure(i, MeasurePayload); p < r.Min || p > r.Max {
					t.Errorf("%+v: record %d payload %g outside range", state, i, p)
				}
			}
			again, _ := Filter(view, state, sites)
			if diff := cmp.Diff(payloads(got), payloads(again)); diff != "" {
				t.Errorf("%+v: filter not idempotent:\n%s", state, diff)
			}
		}
	}
}

func TestFilterEmptyIsNotAnError(t *testing.T) {
	got, err := Filter(launchView(), FilterState{Site: AllSites, Payload: PayloadRange{Min: 0, Max: 0}}, launchSites())
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("Len = %d, want 0", got.Len())
	}
}

func TestFilterKeepsDatasetPositions(t *testing.T) {
	got, err := Filter(launchView(), FilterState{Site: "Y", Payload: PayloadRange{Min: 600, Max: 6000}}, launchSites())
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	// Site then range: the nested subset points straight at the dataset rows.
	sv, ok := got.(*SubView)
	if !ok {
		t.Fatalf("Filter returned %T, want *SubView", got)
	}
	if _, nested := sv.root.(*SubView); nested {
		t.Error("subset of a subset should be flattened onto the dataset view")
	}
	if diff := cmp.Diff([]int{3, 5, 6}, sv.indices); diff != "" {
		t.Errorf("dataset positions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{3000, 6000, 700}, payloads(got)); diff != "" {
		t.Errorf("payloads mismatch (-want +got):\n%s", diff)
	}
}

func TestBoundsOfEmptyView(t *testing.T) {
	if diff := cmp.Diff(PayloadRange{}, Bounds(NewSliceView(nil))); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(fullRange, Bounds(launchView())); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestDomainAdapterUnregisteredKeys(t *testing.T) {
	type row struct{ site string }
	a := NewDomainAdapter[row]().Dimension(DimSite, func(r row) string { return r.site })
	view := a.Bind([]row{{"X"}})
	if view.Dimension(0, DimSite) != "X" || view.Measure(0, MeasurePayload) != 0 {
		t.Errorf("bound view = %q %g", view.Dimension(0, DimSite), view.Measure(0, MeasurePayload))
	}
}

func TestFilterInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		state FilterState
		want  error
	}{
		{"unknown site", FilterState{Site: "Z", Payload: fullRange}, ErrInvalidFilter},
		{"case mismatch", FilterState{Site: "x", Payload: fullRange}, ErrInvalidFilter},
		{"empty site", FilterState{Site: "", Payload: fullRange}, ErrInvalidFilter},
		{"inverted range", FilterState{Site: AllSites, Payload: PayloadRange{Min: 10, Max: 5}}, ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Filter(launchView(), tt.state, launchSites())
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

// ============================================================================
// AGGREGATION ENGINE
// ============================================================================

func TestAllSitesCountsSuccesses(t *testing.T) {
	filtered, _ := Filter(launchView(), FilterState{Site: AllSites, Payload: fullRange}, launchSites())
	spec := AggregateProportion(filtered, AllSites, launchSites())

	want := []ChartPoint{{Label: "X", Value: 2}, {Label: "Y", Value: 1}}
	if diff := cmp.Diff(want, spec.Slices); diff != "" {
		t.Errorf("slices mismatch (-want +got):\n%s", diff)
	}
	if spec.Title != "Total Successful Launches for All Sites" {
		t.Errorf("Title = %q", spec.Title)
	}
}

func TestSingleSiteBuckets(t *testing.T) {
	filtered, _ := Filter(launchView(), FilterState{Site: "X", Payload: fullRange}, launchSites())
	spec := AggregateProportion(filtered, "X", launchSites())

	want := []ChartPoint{{Label: LabelFailure, Value: 1}, {Label: LabelSuccess, Value: 2}}
	if diff := cmp.Diff(want, spec.Slices); diff != "" {
		t.Errorf("slices mismatch (-want +got):\n%s", diff)
	}
	if spec.Title != "Total Successful Launches by Site X" {
		t.Errorf("Title = %q", spec.Title)
	}
}

func TestEmptyRangeProportion(t *testing.T) {
	state := FilterState{Site: "X", Payload: PayloadRange{Min: 0, Max: 0}}
	filtered, err := Filter(launchView(), state, launchSites())
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if filtered.Len() != 0 {
		t.Fatalf("filtered Len = %d, want 0", filtered.Len())
	}

	scatter := AggregateScatter(filtered, "X", launchSites())
	if len(scatter.Points) != 0 {
		t.Errorf("scatter points = %d, want 0", len(scatter.Points))
	}

	prop := AggregateProportion(filtered, "X", launchSites())
	want := []ChartPoint{{Label: LabelFailure, Value: 0}, {Label: LabelSuccess, Value: 0}}
	if diff := cmp.Diff(want, prop.Slices); diff != "" {
		t.Errorf("slices mismatch (-want +got):\n%s", diff)
	}
	if !prop.Empty() {
		t.Error("two zero slices should count as empty")
	}
}

func TestProportionAllSitesEmptyView(t *testing.T) {
	spec := AggregateProportion(NewSliceView(nil), AllSites, launchSites())
	if len(spec.Slices) != 0 {
		t.Errorf("slices = %v, want none", spec.Slices)
	}
}

func TestProportionSumProperty(t *testing.T) {
	view := launchView()
	filtered, _ := Filter(view, FilterState{Site: AllSites, Payload: fullRange}, launchSites())
	spec := AggregateProportion(filtered, AllSites, launchSites())

	var sum float64
	for _, s := range spec.Slices {
		sum += s.Value
	}
	if want := float64(CountWhere(view, MeasureOutcome, 1)); sum != want {
		t.Errorf("sum of slices = %g, want %g", sum, want)
	}
}

func TestProportionComplementProperty(t *testing.T) {
	for _, site := range []string{"X", "Y"} {
		for _, r := range []PayloadRange{fullRange, {Min: 0, Max: 3000}, {Min: 0, Max: 0}} {
			filtered, _ := Filter(launchView(), FilterState{Site: site, Payload: r}, launchSites())
			spec := AggregateProportion(filtered, site, launchSites())
			if got := spec.Slices[0].Value + spec.Slices[1].Value; int(got) != filtered.Len() {
				t.Errorf("%s %+v: failure+success = %g, want %d", site, r, got, filtered.Len())
			}
		}
	}
}

func TestScatterCorrespondence(t *testing.T) {
	filtered, _ := Filter(launchView(), FilterState{Site: AllSites, Payload: PayloadRange{Min: 600, Max: 9600}}, launchSites())
	spec := AggregateScatter(filtered, AllSites, launchSites())

	if len(spec.Points) != filtered.Len() {
		t.Fatalf("points = %d, want %d", len(spec.Points), filtered.Len())
	}
	for i, p := range spec.Points {
		want := ScatterPoint{
			X:     filtered.Measure(i, MeasurePayload),
			Y:     filtered.Measure(i, MeasureOutcome),
			Group: filtered.Dimension(i, DimBoosterCategory),
		}
		if p != want {
			t.Errorf("point %d = %+v, want %+v", i, p, want)
		}
	}
	if spec.Title != "Correlation between Payload and Success for All Sites" {
		t.Errorf("Title = %q", spec.Title)
	}
}

func TestScatterTitleUsesSiteLabel(t *testing.T) {
	sites := launchSites().WithLabel("X", "Site X-Ray")
	spec := AggregateScatter(NewSliceView(nil), "X", sites)
	if spec.Title != "Correlation between Payload and Success for Site X-Ray" {
		t.Errorf("Title = %q", spec.Title)
	}
}

// ============================================================================
// PIPELINE
// ============================================================================

func TestPipelineProportionIgnoresRange(t *testing.T) {
	p := NewPipeline(launchView(), launchSites())
	if diff := cmp.Diff(fullRange, p.Full()); diff != "" {
		t.Fatalf("Full mismatch:\n%s", diff)
	}

	narrow, err := p.Compute(FilterState{Site: AllSites, Payload: PayloadRange{Min: 0, Max: 0}}, KindProportion)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	wide, _ := p.Compute(FilterState{Site: AllSites, Payload: fullRange}, KindProportion)
	if diff := cmp.Diff(wide, narrow); diff != "" {
		t.Errorf("proportion depends on range:\n%s", diff)
	}
}

func TestPipelineUnknownKind(t *testing.T) {
	p := NewPipeline(launchView(), launchSites())
	if _, err := p.Compute(FilterState{Site: AllSites, Payload: fullRange}, "pie"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, ok := ParseKind(string(k))
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, ok)
		}
	}
	if _, ok := ParseKind("bar"); ok {
		t.Error("ParseKind(bar) should fail")
	}
}

func TestSiteSet(t *testing.T) {
	s := NewSiteSet("A", "B", "A", AllSites, "")
	if diff := cmp.Diff([]string{"A", "B"}, s.Values()); diff != "" {
		t.Errorf("Values mismatch:\n%s", diff)
	}
	if s.Contains(AllSites) {
		t.Error("AllSites must not be a member")
	}
	if !s.Valid(AllSites) || !s.Valid("B") || s.Valid("C") {
		t.Error("Valid mismatch")
	}
	if got := s.WithLabel("B", "Bravo").Label("B"); got != "Bravo" {
		t.Errorf("Label(B) = %q", got)
	}
	if got := s.Label("B"); got != "B" {
		t.Errorf("WithLabel mutated the original: Label(B) = %q", got)
	}
}

func TestPayloadRangeValid(t *testing.T) {
	tests := []struct {
		r    PayloadRange
		want bool
	}{
		{PayloadRange{Min: 0, Max: 0}, true},
		{PayloadRange{Min: 1, Max: 0}, false},
		{PayloadRange{Min: 0, Max: math.NaN()}, false},
		{PayloadRange{Min: math.Inf(-1), Max: 0}, false},
	}
	for _, tt := range tests {
		if got := tt.r.Valid(); got != tt.want {
			t.Errorf("%+v.Valid() = %v, want %v", tt.r, got, tt.want)
		}
	}
}
