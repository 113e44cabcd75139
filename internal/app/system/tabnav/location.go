// internal/app/system/tabnav/location.go
package tabnav

import (
	"strings"
	"sync"
)

// Location is the browser location/history capability the selector is
// driven by.
//
// SetFragment changes the fragment and notifies subscribers the way a
// hashchange event would. Replace swaps the current URL without adding a
// history entry and without notifying anyone; callers that need the
// selector to react must call Notify afterwards. Navigate performs a full
// navigation, which tears the current view down.
type Location interface {
	Path() string
	Fragment() string
	SetFragment(fragment string)
	Replace(url string)
	Navigate(url string)
	Subscribe(fn func(fragment string)) (cancel func())
	Notify()
}

// SplitURL splits "path#fragment" into its parts. Only the first '#'
// separates; the fragment keeps any later '#' characters.
func SplitURL(u string) (path, fragment string) {
	if i := strings.IndexByte(u, '#'); i >= 0 {
		return u[:i], u[i+1:]
	}
	return u, ""
}

// JoinURL is the inverse of SplitURL. An empty fragment yields the bare path.
func JoinURL(path, fragment string) string {
	if fragment == "" {
		return path
	}
	return path + "#" + fragment
}

type subscriber struct {
	id int
	fn func(string)
}

// MemoryLocation is an in-process Location with a back stack. It is safe
// for concurrent use; subscribers are called without the lock held, in
// subscription order.
type MemoryLocation struct {
	mu          sync.Mutex
	path        string
	fragment    string
	back        []string
	subs        []subscriber
	nextID      int
	navigations []string
}

// NewMemoryLocation starts at url ("/dashboard#admins").
func NewMemoryLocation(url string) *MemoryLocation {
	p, f := SplitURL(url)
	return &MemoryLocation{path: p, fragment: f}
}

func (m *MemoryLocation) Path() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path
}

func (m *MemoryLocation) Fragment() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fragment
}

// URL returns the current path and fragment joined.
func (m *MemoryLocation) URL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return JoinURL(m.path, m.fragment)
}

// SetFragment pushes a history entry and notifies subscribers. Setting the
// fragment it already has is a no-op, as in a browser.
func (m *MemoryLocation) SetFragment(fragment string) {
	m.mu.Lock()
	if fragment == m.fragment {
		m.mu.Unlock()
		return
	}
	m.back = append(m.back, m.fragment)
	m.fragment = fragment
	subs := m.snapshot()
	m.mu.Unlock()

	dispatch(subs, fragment)
}

// Replace sets path and fragment in place. No history entry, no notification.
func (m *MemoryLocation) Replace(url string) {
	p, f := SplitURL(url)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.path = p
	m.fragment = f
}

// Navigate records a full navigation and moves to url. Subscribers are not
// notified; the view they belong to is gone after a real navigation.
func (m *MemoryLocation) Navigate(url string) {
	p, f := SplitURL(url)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.navigations = append(m.navigations, url)
	m.path = p
	m.fragment = f
	m.back = nil
}

// Back pops one history entry and notifies subscribers, like the browser
// back button. It reports false when there is nothing to go back to.
func (m *MemoryLocation) Back() bool {
	m.mu.Lock()
	if len(m.back) == 0 {
		m.mu.Unlock()
		return false
	}
	prev := m.back[len(m.back)-1]
	m.back = m.back[:len(m.back)-1]
	m.fragment = prev
	subs := m.snapshot()
	m.mu.Unlock()

	dispatch(subs, prev)
	return true
}

func (m *MemoryLocation) Subscribe(fn func(fragment string)) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, s := range m.subs {
				if s.id == id {
					m.subs = append(m.subs[:i], m.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Notify dispatches the current fragment to every subscriber.
func (m *MemoryLocation) Notify() {
	m.mu.Lock()
	f := m.fragment
	subs := m.snapshot()
	m.mu.Unlock()

	dispatch(subs, f)
}

// Subscribers returns the number of live subscriptions.
func (m *MemoryLocation) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// Navigations returns every URL passed to Navigate, oldest first.
func (m *MemoryLocation) Navigations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.navigations))
	copy(out, m.navigations)
	return out
}

// snapshot must be called with mu held.
func (m *MemoryLocation) snapshot() []func(string) {
	out := make([]func(string), len(m.subs))
	for i, s := range m.subs {
		out[i] = s.fn
	}
	return out
}

func dispatch(subs []func(string), fragment string) {
	for _, fn := range subs {
		fn(fragment)
	}
}
