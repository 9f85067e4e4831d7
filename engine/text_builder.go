package engine

import (
	"fmt"
)

// ============================================================================
// TEXT BUILDER — Produces TextData summaries of a view
// ============================================================================

// BuildSummary counts launches and outcomes and measures payloads of a view.
func BuildSummary(view RecordView) *TextData {
	n := view.Len()
	if n == 0 {
		return &TextData{Value: "No launches"}
	}

	successes := CountWhere(view, MeasureOutcome, 1)
	data := &TextData{
		Launches:    n,
		Successes:   successes,
		Failures:    n - successes,
		SuccessRate: RoundTo2(float64(successes) / float64(n) * 100),
		MeanPayload: RoundTo2(SumMeasure(view, MeasurePayload) / float64(n)),
		Payload:     Bounds(view),
	}
	data.Value = fmt.Sprintf("%s launches, %s successful (%.1f%%)",
		FormatInt(n), FormatInt(successes), data.SuccessRate)
	return data
}

// SiteSummary is one row of a per-site breakdown.
type SiteSummary struct {
	Site string    `json:"site"`
	Data *TextData `json:"data"`
}

// BuildSiteSummaries summarizes every known site, in set order, followed by
// sites found in the data but missing from the set.
func BuildSiteSummaries(view RecordView, sites SiteSet) []SiteSummary {
	groups := GroupBy(view, DimSite)
	byKey := make(map[string]RecordView, len(groups))
	for _, g := range groups {
		byKey[g.Key] = g.View
	}

	out := make([]SiteSummary, 0, len(groups))
	for _, site := range sites.Values() {
		v, ok := byKey[site]
		if !ok {
			v = newSubView(view, nil)
		}
		out = append(out, SiteSummary{Site: site, Data: BuildSummary(v)})
	}
	for _, g := range groups {
		if !sites.Contains(g.Key) {
			out = append(out, SiteSummary{Site: g.Key, Data: BuildSummary(g.View)})
		}
	}
	return out
}
