package engine

import (
	"math"
)

// ============================================================================
// ENGINE TYPES — Launch dashboard filtering and aggregation
// ============================================================================
// Records are read through RecordView (see view.go) using the dimension and
// measure keys below. The engine never owns the dataset.
//
// Dependency: engine imports only the standard library.
// ============================================================================

// Dimension and measure keys every launch view must serve.
const (
	DimSite            = "site"
	DimBoosterCategory = "booster_category"

	MeasurePayload = "payload_mass"
	MeasureOutcome = "outcome"
)

// AllSites selects every site.
const AllSites = "ALL"

// ============================================================================
// RECORD — Generic data row
// ============================================================================

// Record is a single data row with string dimensions and numeric measures.
// Record{Dimensions["site"]="KSC LC-39A", Measures["payload_mass"]=2500}
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// ============================================================================
// FILTER STATE — The only mutable input of the dashboard
// ============================================================================

// PayloadRange is an inclusive payload mass interval in kilograms.
type PayloadRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Valid reports whether both bounds are finite numbers and Min <= Max.
func (r PayloadRange) Valid() bool {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return false
	}
	return r.Min <= r.Max
}

// Contains reports whether v lies within the range, bounds included.
func (r PayloadRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// FilterState is the user's current selection.
// It is replaced as a whole on every input event, never edited in place.
type FilterState struct {
	Site    string       `json:"site"`
	Payload PayloadRange `json:"payload"`
}

// ============================================================================
// CHART SPEC — Renderer-ready chart description
// ============================================================================

// ChartKind tags a ChartSpec.
type ChartKind string

const (
	KindProportion ChartKind = "proportion"
	KindScatter    ChartKind = "scatter"
)

// Kinds lists every chart the dashboard draws, in display order.
var Kinds = []ChartKind{KindProportion, KindScatter}

// ParseKind maps a name to a ChartKind.
func ParseKind(name string) (ChartKind, bool) {
	switch ChartKind(name) {
	case KindProportion:
		return KindProportion, true
	case KindScatter:
		return KindScatter, true
	}
	return "", false
}

// ChartSpec is the output artifact handed to a Renderer.
// Proportion charts populate Slices; scatter charts populate Points.
type ChartSpec struct {
	Kind     ChartKind      `json:"kind"`
	Title    string         `json:"title"`
	Site     string         `json:"site"`
	Slices   []ChartPoint   `json:"slices,omitempty"`
	Points   []ScatterPoint `json:"points,omitempty"`
	Revision uint64         `json:"revision"`
	Err      string         `json:"error,omitempty"`
}

// Empty reports whether the spec carries no data to draw.
func (s ChartSpec) Empty() bool {
	switch s.Kind {
	case KindProportion:
		for _, p := range s.Slices {
			if p.Value != 0 {
				return false
			}
		}
		return true
	default:
		return len(s.Points) == 0
	}
}

// ChartPoint is one labelled value of a proportion chart.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ScatterPoint is one launch on the payload/outcome plane.
type ScatterPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Group string  `json:"group"`
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group represents a grouped/aggregated result.
type Group struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Value float64    `json:"value"`
	Count int        `json:"count"`
	View  RecordView `json:"-"` // Sub-view for records in this group (zero-copy)
}

// ============================================================================
// RENDER-READY TYPES — Consumed by JSON frontends
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
// Proportion series fill Data; scatter series fill Points.
type ChartSeries struct {
	Name   string         `json:"name"`
	Data   []ChartPoint   `json:"data,omitempty"`
	Points []ScatterPoint `json:"points,omitempty"`
	Color  string         `json:"color,omitempty"`
}

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// TextData summarizes a view for text output.
type TextData struct {
	Launches    int          `json:"launches"`
	Successes   int          `json:"successes"`
	Failures    int          `json:"failures"`
	SuccessRate float64      `json:"successRate"`
	MeanPayload float64      `json:"meanPayload"`
	Payload     PayloadRange `json:"payload"`
	Value       string       `json:"value"`
}
