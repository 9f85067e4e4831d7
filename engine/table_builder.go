package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from a ChartSpec
// ============================================================================
// Proportion: one row per slice plus a total.
// Scatter: one row per point plus a launch count.
// ============================================================================

// BuildTable produces a TableData from a spec.
func BuildTable(spec ChartSpec) *TableData {
	if spec.Err != "" {
		return &TableData{
			Title:   spec.Title,
			Columns: []Column{},
			Rows:    [][]string{},
			Summary: &Summary{Label: "Error", Values: map[string]string{"error": spec.Err}},
		}
	}
	if spec.Kind == KindScatter {
		return buildPointTable(spec)
	}
	return buildSliceTable(spec)
}

func buildSliceTable(spec ChartSpec) *TableData {
	groupLabel := "Outcome"
	if spec.Site == AllSites {
		groupLabel = LabelForDimension(DimSite)
	}

	columns := []Column{
		{Key: "label", Label: groupLabel, Type: "text", Align: "left"},
		{Key: "value", Label: "Launches", Type: "number", Align: "right"},
	}

	rows := make([][]string, 0, len(spec.Slices))
	var total float64
	for _, s := range spec.Slices {
		rows = append(rows, []string{s.Label, FormatNumber(s.Value)})
		total += s.Value
	}

	return &TableData{
		Title:   spec.Title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label:  "Total",
			Values: map[string]string{"value": FormatNumber(total)},
		},
	}
}

func buildPointTable(spec ChartSpec) *TableData {
	columns := []Column{
		{Key: MeasurePayload, Label: LabelForDimension(MeasurePayload), Type: "number", Align: "right"},
		{Key: MeasureOutcome, Label: "class", Type: "number", Align: "center"},
		{Key: DimBoosterCategory, Label: LabelForDimension(DimBoosterCategory), Type: "text", Align: "left"},
	}

	rows := make([][]string, 0, len(spec.Points))
	successes := 0
	for _, p := range spec.Points {
		rows = append(rows, []string{FormatNumber(p.X), FormatNumber(p.Y), p.Group})
		if p.Y == 1 {
			successes++
		}
	}

	return &TableData{
		Title:   spec.Title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%s launches)", FormatInt(len(spec.Points))),
			Values: map[string]string{
				MeasureOutcome: fmt.Sprintf("%d successes", successes),
			},
		},
	}
}
