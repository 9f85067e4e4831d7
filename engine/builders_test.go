package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fullScatter(t *testing.T) ChartSpec {
	t.Helper()
	spec, err := NewPipeline(launchView(), launchSites()).Compute(FilterState{Site: AllSites, Payload: fullRange}, KindScatter)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return spec
}

func TestBuildChartScatterGroupsByBooster(t *testing.T) {
	config := BuildChart(fullScatter(t))
	if config.ChartType != "scatter" || !config.ShowGrid {
		t.Errorf("ChartType = %q ShowGrid = %v", config.ChartType, config.ShowGrid)
	}

	var names []string
	counts := map[string]int{}
	for _, s := range config.Series {
		names = append(names, s.Name)
		counts[s.Name] = len(s.Points)
	}
	if diff := cmp.Diff([]string{"v1.0", "FT", "v1.1", "B4"}, names); diff != "" {
		t.Errorf("series order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]int{"v1.0": 2, "FT": 2, "v1.1": 2, "B4": 1}, counts); diff != "" {
		t.Errorf("series sizes mismatch (-want +got):\n%s", diff)
	}
	if config.Series[1].Color != ColorAt(1) {
		t.Errorf("series colour = %q, want %q", config.Series[1].Color, ColorAt(1))
	}
}

func TestBuildChartProportion(t *testing.T) {
	spec, _ := NewPipeline(launchView(), launchSites()).Compute(FilterState{Site: "X", Payload: fullRange}, KindProportion)
	config := BuildChart(spec)
	if config.ChartType != "pie" {
		t.Errorf("ChartType = %q, want pie", config.ChartType)
	}
	if len(config.Series) != 1 {
		t.Fatalf("series = %d, want 1", len(config.Series))
	}
	want := []ChartPoint{{Label: LabelFailure, Value: 1}, {Label: LabelSuccess, Value: 2}}
	if diff := cmp.Diff(want, config.Series[0].Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
	if len(config.Colors) != 2 {
		t.Errorf("colors = %v", config.Colors)
	}
}

func TestBuildChartErrorHasNoSeries(t *testing.T) {
	spec := ChartSpec{Kind: KindScatter, Title: "broken", Err: "boom"}
	if config := BuildChart(spec); len(config.Series) != 0 {
		t.Errorf("series = %d, want 0", len(config.Series))
	}
}

func TestBuildTableSlices(t *testing.T) {
	spec, _ := NewPipeline(launchView(), launchSites()).Compute(FilterState{Site: AllSites, Payload: fullRange}, KindProportion)
	table := BuildTable(spec)

	if table.Columns[0].Label != "Launch Site" {
		t.Errorf("first column = %q", table.Columns[0].Label)
	}
	if diff := cmp.Diff([][]string{{"X", "2"}, {"Y", "1"}}, table.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if got := table.Summary.Values["value"]; got != "3" {
		t.Errorf("total = %q, want 3", got)
	}
}

func TestBuildTablePoints(t *testing.T) {
	table := BuildTable(fullScatter(t))
	if len(table.Rows) != 7 {
		t.Fatalf("rows = %d, want 7", len(table.Rows))
	}
	if diff := cmp.Diff([]string{"500", "0", "v1.0"}, table.Rows[0]); diff != "" {
		t.Errorf("first row mismatch (-want +got):\n%s", diff)
	}
	if table.Summary.Label != "Total (7 launches)" {
		t.Errorf("summary label = %q", table.Summary.Label)
	}
	if got := table.Summary.Values[MeasureOutcome]; got != "3 successes" {
		t.Errorf("summary = %q", got)
	}
}

func TestBuildTableError(t *testing.T) {
	table := BuildTable(ChartSpec{Kind: KindProportion, Err: "bad site"})
	if len(table.Rows) != 0 || table.Summary.Values["error"] != "bad site" {
		t.Errorf("error table = %+v", table)
	}
}

func TestBuildSummary(t *testing.T) {
	got := BuildSummary(launchView())
	want := &TextData{
		Launches:    7,
		Successes:   3,
		Failures:    4,
		SuccessRate: 42.86,
		MeanPayload: 3757.14,
		Payload:     fullRange,
		Value:       "7 launches, 3 successful (42.9%)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	if empty := BuildSummary(NewSliceView(nil)); empty.Value != "No launches" || empty.Launches != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}

func TestBuildSiteSummaries(t *testing.T) {
	sites := NewSiteSet("Y", "Q")
	got := BuildSiteSummaries(launchView(), sites)

	var order []string
	for _, s := range got {
		order = append(order, s.Site)
	}
	if diff := cmp.Diff([]string{"Y", "Q", "X"}, order); diff != "" {
		t.Errorf("site order mismatch (-want +got):\n%s", diff)
	}
	if got[0].Data.Launches != 4 || got[1].Data.Launches != 0 || got[2].Data.Launches != 3 {
		t.Errorf("launch counts = %d %d %d", got[0].Data.Launches, got[1].Data.Launches, got[2].Data.Launches)
	}
}

func TestFormatting(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatInt(0), "0"},
		{FormatInt(1234567), "1,234,567"},
		{FormatInt(-1500), "-1,500"},
		{FormatNumber(2500), "2500"},
		{FormatNumber(2500.456), "2500.46"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
