package engine

// SiteSet is the fixed, enumerable set of launch sites a user may select.
// It is configured up front and never inferred from the data.
type SiteSet struct {
	order  []string
	labels map[string]string
}

// NewSiteSet builds a set from site values in display order.
// Duplicates and the reserved AllSites value are ignored.
func NewSiteSet(values ...string) SiteSet {
	s := SiteSet{labels: make(map[string]string, len(values))}
	for _, v := range values {
		s.add(v, v)
	}
	return s
}

// WithLabel returns a copy of s in which value is displayed as label.
// Unknown values are added.
func (s SiteSet) WithLabel(value, label string) SiteSet {
	out := SiteSet{
		order:  append([]string(nil), s.order...),
		labels: make(map[string]string, len(s.labels)+1),
	}
	for k, v := range s.labels {
		out.labels[k] = v
	}
	if _, ok := out.labels[value]; ok {
		out.labels[value] = label
	} else {
		out.add(value, label)
	}
	return out
}

func (s *SiteSet) add(value, label string) {
	if value == "" || value == AllSites {
		return
	}
	if _, ok := s.labels[value]; ok {
		return
	}
	s.order = append(s.order, value)
	s.labels[value] = label
}

// Contains reports whether site is a known site. AllSites is not a member.
func (s SiteSet) Contains(site string) bool {
	_, ok := s.labels[site]
	return ok
}

// Valid reports whether site is an acceptable selection: AllSites or a known site.
func (s SiteSet) Valid(site string) bool {
	return site == AllSites || s.Contains(site)
}

// Values returns the known sites in display order.
func (s SiteSet) Values() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of known sites.
func (s SiteSet) Len() int { return len(s.order) }

// Label returns the display label for a selection.
func (s SiteSet) Label(site string) string {
	if site == AllSites {
		return "All Sites"
	}
	if l, ok := s.labels[site]; ok && l != "" {
		return l
	}
	return site
}
