// internal/app/system/tabnav/selector.go
package tabnav

import "sync"

// Selector holds the active section of one view and keeps it bound to a
// Location for as long as the view lives. Call Close when the view is torn
// down.
type Selector struct {
	sections Sections
	loc      Location

	mu       sync.Mutex
	active   Section
	closed   bool
	cancel   func()
	onChange func(Section)
}

// Option configures a Selector.
type Option func(*Selector)

// OnChange registers fn to run after every change of the active section,
// whatever caused it. fn runs without the selector's lock held.
func OnChange(fn func(Section)) Option {
	return func(s *Selector) { s.onChange = fn }
}

// NewSelector resolves the initial section from loc's current fragment and
// subscribes to fragment changes.
func NewSelector(sections Sections, loc Location, opts ...Option) *Selector {
	s := &Selector{
		sections: sections,
		loc:      loc,
		active:   sections.Resolve(loc.Fragment()),
	}
	for _, o := range opts {
		o(s)
	}
	s.cancel = loc.Subscribe(s.fragmentChanged)
	return s
}

// Active returns the current section.
func (s *Selector) Active() Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Sections returns the set this selector chooses from.
func (s *Selector) Sections() Sections { return s.sections }

// Select makes name active and writes it to the fragment. An unknown name
// selects the default section. The resolved section is returned.
func (s *Selector) Select(name string) Section {
	sec := s.sections.Resolve(name)
	s.set(sec)
	// The Location may call back into fragmentChanged synchronously, so the
	// lock must not be held here.
	s.loc.SetFragment(string(sec))
	return sec
}

// Close stops listening for fragment changes. It is safe to call more than
// once.
func (s *Selector) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (s *Selector) fragmentChanged(fragment string) {
	s.set(s.sections.Resolve(fragment))
}

func (s *Selector) set(sec Section) {
	s.mu.Lock()
	if s.closed || s.active == sec {
		s.mu.Unlock()
		return
	}
	s.active = sec
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(sec)
	}
}
