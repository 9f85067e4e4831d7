package schema

import (
	"strings"
	"unicode"
)

// ============================================================================
// HEADER MATCHING — Locates configured columns in a CSV header
// ============================================================================
// Exact header names win. Otherwise a header matches when its HeaderKey
// equals the configured name's, so "launch site", "LaunchSite" and
// "Launch Site" all find the site column.
// ============================================================================

// HeaderKey converts a header to snake_case for lenient matching.
// "Payload Mass (kg)" → "payload_mass_kg", "boosterVersion" → "booster_version".
func HeaderKey(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))

	var b strings.Builder
	var prev rune
	for i, r := range s {
		switch {
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			b.WriteRune('_')
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune('_')
		}
		prev = r
	}

	key := b.String()
	for strings.Contains(key, "__") {
		key = strings.ReplaceAll(key, "__", "_")
	}
	return strings.Trim(key, "_")
}

// Resolve maps every configured column to the header text present in the
// file. Required columns that cannot be found are returned in missing, by
// their configured name; optional ones resolve to "".
func (c Columns) Resolve(header []string) (resolved Columns, missing []string) {
	exact := make(map[string]string, len(header))
	byKey := make(map[string]string, len(header))
	for _, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			continue
		}
		if _, ok := exact[h]; !ok {
			exact[h] = h
		}
		if k := HeaderKey(h); k != "" {
			if _, ok := byKey[k]; !ok {
				byKey[k] = h
			}
		}
	}

	find := func(name string, required bool) string {
		if name != "" {
			if h, ok := exact[name]; ok {
				return h
			}
			if h, ok := byKey[HeaderKey(name)]; ok {
				return h
			}
		}
		if required {
			missing = append(missing, name)
		}
		return ""
	}

	resolved = Columns{
		Site:            find(c.Site, true),
		Payload:         find(c.Payload, true),
		Outcome:         find(c.Outcome, true),
		BoosterCategory: find(c.BoosterCategory, true),
		FlightNumber:    find(c.FlightNumber, false),
		BoosterVersion:  find(c.BoosterVersion, false),
	}
	return resolved, missing
}
