package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ============================================================================
// SCHEMA — Describes the shape of the launch dataset
// ============================================================================
// The loader uses the column mapping to read CSV headers.
// The engine uses the known-site list as the fixed set of valid selections.
// The dashboard uses site labels and slider bounds to draw its controls.
// ============================================================================

// AllSitesValue is the selection value meaning "no site restriction".
// It is never a member of Sites.
const AllSitesValue = "ALL"

// Config describes the complete shape of a launch dataset.
type Config struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Columns Columns      `json:"columns" yaml:"columns"`
	Sites   []SiteOption `json:"sites" yaml:"sites"`
	Slider  SliderBounds `json:"slider" yaml:"slider"`
}

// Columns maps record attributes to CSV header names.
// Site, Payload, Outcome and BoosterCategory are required in the data file.
type Columns struct {
	Site            string `json:"site" yaml:"site"`
	Payload         string `json:"payload" yaml:"payload"`
	Outcome         string `json:"outcome" yaml:"outcome"`
	BoosterCategory string `json:"boosterCategory" yaml:"booster_category"`

	// Optional columns, read when present.
	FlightNumber   string `json:"flightNumber,omitempty" yaml:"flight_number,omitempty"`
	BoosterVersion string `json:"boosterVersion,omitempty" yaml:"booster_version,omitempty"`
}

// SiteOption is one entry of the fixed known-site set.
type SiteOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// SliderBounds are the payload range control limits shown by the dashboard.
// They do not restrict the data; the initial selection is the dataset's own bounds.
type SliderBounds struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Step float64 `json:"step" yaml:"step"`
}

// DefaultColumns returns the header names of the SpaceX launch export.
func DefaultColumns() Columns {
	return Columns{
		Site:            "Launch Site",
		Payload:         "Payload Mass (kg)",
		Outcome:         "class",
		BoosterCategory: "Booster Version Category",
		FlightNumber:    "Flight Number",
		BoosterVersion:  "Booster Version",
	}
}

// DefaultSites returns the four SpaceX launch sites.
func DefaultSites() []SiteOption {
	return []SiteOption{
		{Value: "CCAFS LC-40", Label: "CCAFS LC-40"},
		{Value: "CCAFS SLC-40", Label: "CCAFS SLC-40"},
		{Value: "KSC LC-39A", Label: "KSC LC-39A"},
		{Value: "VAFB SLC-4E", Label: "VAFB SLC-4E"},
	}
}

// Default returns the schema for the SpaceX launch records dataset.
func Default() Config {
	return Config{
		Name:        "SpaceX Launch Records",
		Description: "Launch outcomes by site, payload mass and booster category",
		Columns:     DefaultColumns(),
		Sites:       DefaultSites(),
		Slider:      SliderBounds{Min: 0, Max: 10000, Step: 1000},
	}
}

// SiteValues returns the known site values in configured order.
func (c Config) SiteValues() []string {
	vals := make([]string, len(c.Sites))
	for i, s := range c.Sites {
		vals[i] = s.Value
	}
	return vals
}

// RequiredColumns returns the header names that must be present.
func (c Config) RequiredColumns() []string {
	return []string{c.Columns.Site, c.Columns.Payload, c.Columns.Outcome, c.Columns.BoosterCategory}
}

// Validate reports every problem with the schema at once.
func (c Config) Validate() error {
	var errs []error

	required := map[string]string{
		"site":             c.Columns.Site,
		"payload":          c.Columns.Payload,
		"outcome":          c.Columns.Outcome,
		"booster_category": c.Columns.BoosterCategory,
	}
	for _, key := range []string{"site", "payload", "outcome", "booster_category"} {
		if strings.TrimSpace(required[key]) == "" {
			errs = append(errs, fmt.Errorf("column %q has no header name", key))
		}
	}

	if len(c.Sites) == 0 {
		errs = append(errs, errors.New("at least one known site is required"))
	}
	seen := make(map[string]bool, len(c.Sites))
	for _, s := range c.Sites {
		switch {
		case strings.TrimSpace(s.Value) == "":
			errs = append(errs, errors.New("site value must not be empty"))
		case s.Value == AllSitesValue:
			errs = append(errs, fmt.Errorf("site value %q is reserved", AllSitesValue))
		case seen[s.Value]:
			errs = append(errs, fmt.Errorf("duplicate site %q", s.Value))
		}
		seen[s.Value] = true
	}

	if c.Slider.Min >= c.Slider.Max {
		errs = append(errs, fmt.Errorf("slider min %g must be below max %g", c.Slider.Min, c.Slider.Max))
	}
	if c.Slider.Step <= 0 {
		errs = append(errs, fmt.Errorf("slider step %g must be positive", c.Slider.Step))
	}

	return errors.Join(errs...)
}
