// Package tabnav keeps a page's active section in step with the URL
// fragment. A user choosing a tab rewrites the fragment, and a fragment
// changed from elsewhere (back button, direct link, another component)
// moves the active tab. Unknown fragments always fall back to the first
// section; nothing in this package fails for any fragment string.
package tabnav

// Section names one tab of a page.
type Section string

// Sections is a fixed, ordered set of section names. The first one is the
// default. The zero value resolves every fragment to "".
type Sections struct {
	order []Section
	known map[Section]struct{}
}

// NewSections builds a section set. Empty names and duplicates are dropped;
// the first remaining name becomes the default.
func NewSections(names ...string) Sections {
	s := Sections{known: make(map[Section]struct{}, len(names))}
	for _, n := range names {
		sec := Section(n)
		if n == "" {
			continue
		}
		if _, dup := s.known[sec]; dup {
			continue
		}
		s.known[sec] = struct{}{}
		s.order = append(s.order, sec)
	}
	return s
}

// Default returns the first section.
func (s Sections) Default() Section {
	if len(s.order) == 0 {
		return ""
	}
	return s.order[0]
}

// Resolve maps a fragment (the text after '#', without the '#') to a
// section. Matching is exact; anything unrecognized resolves to Default.
func (s Sections) Resolve(fragment string) Section {
	if s.Contains(fragment) {
		return Section(fragment)
	}
	return s.Default()
}

// Contains reports whether name is one of the sections.
func (s Sections) Contains(name string) bool {
	if name == "" {
		return false
	}
	_, ok := s.known[Section(name)]
	return ok
}

// All returns the sections in order.
func (s Sections) All() []Section {
	out := make([]Section, len(s.order))
	copy(out, s.order)
	return out
}
