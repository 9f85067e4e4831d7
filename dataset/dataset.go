// Package dataset holds the immutable launch records the dashboard reads.
package dataset

import (
	"github.com/aclements/go-moremath/stats"

	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/schema"
)

// Launch is one launch record.
type Launch struct {
	FlightNumber    int     `json:"flightNumber,omitempty"`
	Site            string  `json:"site"`
	PayloadMass     float64 `json:"payloadMass"`
	Outcome         int     `json:"outcome"`
	BoosterVersion  string  `json:"boosterVersion,omitempty"`
	BoosterCategory string  `json:"boosterCategory"`
}

// Succeeded reports whether the launch outcome is 1.
func (l Launch) Succeeded() bool { return l.Outcome == 1 }

// launchAdapter serves Launch fields under the engine's dimension and measure keys.
var launchAdapter = engine.NewDomainAdapter[Launch]().
	Dimension(engine.DimSite, func(l Launch) string { return l.Site }).
	Dimension(engine.DimBoosterCategory, func(l Launch) string { return l.BoosterCategory }).
	Measure(engine.MeasurePayload, func(l Launch) float64 { return l.PayloadMass }).
	Measure(engine.MeasureOutcome, func(l Launch) float64 {
		if l.Succeeded() {
			return 1
		}
		return 0
	})

// Dataset is an ordered, read-only collection of launches.
// It is safe for concurrent readers; nothing mutates it after Parse.
type Dataset struct {
	launches []Launch
	payloads []float64
}

func newDataset(launches []Launch) *Dataset {
	payloads := make([]float64, len(launches))
	for i, l := range launches {
		payloads[i] = l.PayloadMass
	}
	return &Dataset{launches: launches, payloads: payloads}
}

// Len returns the number of launches.
func (d *Dataset) Len() int { return len(d.launches) }

// Records returns a copy of every launch in file order.
func (d *Dataset) Records() []Launch {
	out := make([]Launch, len(d.launches))
	copy(out, d.launches)
	return out
}

// View returns a zero-copy engine view over the launches.
func (d *Dataset) View() engine.RecordView {
	return launchAdapter.Bind(d.launches)
}

// PayloadBounds returns the smallest and largest payload mass.
func (d *Dataset) PayloadBounds() engine.PayloadRange {
	if len(d.payloads) == 0 {
		return engine.PayloadRange{}
	}
	lo, hi := stats.Bounds(d.payloads)
	return engine.PayloadRange{Min: lo, Max: hi}
}

// MeanPayload returns the average payload mass, or 0 for no launches.
func (d *Dataset) MeanPayload() float64 {
	if len(d.payloads) == 0 {
		return 0
	}
	return stats.Mean(d.payloads)
}

// Sites returns the distinct sites in order of first appearance.
func (d *Dataset) Sites() []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range d.launches {
		if !seen[l.Site] {
			seen[l.Site] = true
			out = append(out, l.Site)
		}
	}
	return out
}

// KnownSites builds the engine's fixed site set from a schema, labels included.
func KnownSites(sch schema.Config) engine.SiteSet {
	set := engine.NewSiteSet(sch.SiteValues()...)
	for _, s := range sch.Sites {
		if s.Label != "" {
			set = set.WithLabel(s.Value, s.Label)
		}
	}
	return set
}
