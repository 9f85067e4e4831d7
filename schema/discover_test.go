package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeaderKey(t *testing.T) {
	tests := map[string]string{
		"Payload Mass (kg)":        "payload_mass_kg",
		"Launch Site":              "launch_site",
		"launch-site":              "launch_site",
		"boosterVersionCategory":   "booster_version_category",
		"  Flight Number ":         "flight_number",
		"\ufeffLaunch Site":        "launch_site",
		"class":                    "class",
		"Booster Version Category": "booster_version_category",
	}
	for in, want := range tests {
		if got := HeaderKey(in); got != want {
			t.Errorf("HeaderKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveExactAndLenient(t *testing.T) {
	header := []string{"", "flight number", "LAUNCH SITE", "class", "payload_mass_kg", "Booster Version Category"}
	got, missing := DefaultColumns().Resolve(header)
	if len(missing) != 0 {
		t.Fatalf("missing = %v", missing)
	}
	want := Columns{
		Site:            "LAUNCH SITE",
		Payload:         "payload_mass_kg",
		Outcome:         "class",
		BoosterCategory: "Booster Version Category",
		FlightNumber:    "flight number",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveMissing(t *testing.T) {
	_, missing := DefaultColumns().Resolve([]string{"Launch Site", "Payload Mass (kg)"})
	if diff := cmp.Diff([]string{"class", "Booster Version Category"}, missing); diff != "" {
		t.Errorf("missing mismatch (-want +got):\n%s", diff)
	}
}
