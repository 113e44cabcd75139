// internal/app/system/tabnav/subtargets.go
package tabnav

// SubTargets drives fragment targets that live inside a hosting page, such
// as dashboard#settings, from anywhere in the console.
type SubTargets struct {
	host string
	loc  Location
}

// NewSubTargets binds sub-targets hosted at hostPath to loc.
func NewSubTargets(hostPath string, loc Location) *SubTargets {
	return &SubTargets{host: hostPath, loc: loc}
}

// Host returns the hosting page path.
func (t *SubTargets) Host() string { return t.host }

// Activate shows target. On the hosting page only the fragment changes;
// from any other page a full navigation to host#target is issued. It
// reports whether a navigation was needed.
func (t *SubTargets) Activate(target string) (navigated bool) {
	if t.loc.Path() == t.host {
		t.loc.SetFragment(target)
		return false
	}
	t.loc.Navigate(JoinURL(t.host, target))
	return true
}

// Clear removes the fragment from the URL and then notifies subscribers
// directly, since a history replace fires no change of its own.
func (t *SubTargets) Clear() {
	t.loc.Replace(t.loc.Path())
	t.loc.Notify()
}
