// internal/app/features/dashboard/location.go
package dashboard

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/trueportme/adminconsole/internal/app/system/tabnav"
)

// htmxLocation is the tabnav.Location of one request/response pair. The
// browser URL is read from HX-Current-URL (htmx sends window.location,
// fragment included) and falls back to the request path plus ?section=.
// URL changes are written back as htmx response headers.
type htmxLocation struct {
	w    http.ResponseWriter
	r    *http.Request
	htmx bool

	mu        sync.Mutex
	path      string
	fragment  string
	navigated string
	nextID    int
	subs      map[int]func(string)
}

var _ tabnav.Location = (*htmxLocation)(nil)

func newHTMXLocation(w http.ResponseWriter, r *http.Request, fallbackPath string) *htmxLocation {
	l := &htmxLocation{
		w:        w,
		r:        r,
		htmx:     r.Header.Get("HX-Request") == "true",
		path:     fallbackPath,
		fragment: r.URL.Query().Get("section"),
		subs:     map[int]func(string){},
	}
	if cur := r.Header.Get("HX-Current-URL"); cur != "" {
		if u, err := url.Parse(cur); err == nil {
			if u.Path != "" {
				l.path = u.Path
			}
			if u.Fragment != "" {
				l.fragment = u.Fragment
			}
		}
	}
	return l
}

func (l *htmxLocation) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

func (l *htmxLocation) Fragment() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fragment
}

// SetFragment pushes path#fragment onto the browser history and notifies
// subscribers.
func (l *htmxLocation) SetFragment(fragment string) {
	l.mu.Lock()
	l.fragment = fragment
	target := tabnav.JoinURL(l.path, fragment)
	subs := l.snapshot()
	l.mu.Unlock()

	l.w.Header().Set("HX-Push-Url", target)
	for _, fn := range subs {
		fn(fragment)
	}
}

// Replace swaps the browser URL without a history entry. Nobody is
// notified.
func (l *htmxLocation) Replace(u string) {
	l.mu.Lock()
	l.path, l.fragment = tabnav.SplitURL(u)
	l.mu.Unlock()

	l.w.Header().Set("HX-Replace-Url", u)
}

// Navigate asks the browser for a full page load of u. A plain request
// gets a 303; the caller must not write a body afterwards.
func (l *htmxLocation) Navigate(u string) {
	l.mu.Lock()
	l.navigated = u
	l.mu.Unlock()

	if l.htmx {
		l.w.Header().Set("HX-Redirect", u)
		l.w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(l.w, l.r, u, http.StatusSeeOther)
}

func (l *htmxLocation) Subscribe(fn func(fragment string)) (cancel func()) {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			l.mu.Unlock()
		})
	}
}

func (l *htmxLocation) Notify() {
	l.mu.Lock()
	fragment := l.fragment
	subs := l.snapshot()
	l.mu.Unlock()

	for _, fn := range subs {
		fn(fragment)
	}
}

// Navigated returns the target of a full navigation, or "".
func (l *htmxLocation) Navigated() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.navigated
}

func (l *htmxLocation) subscribers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}

// snapshot must be called with mu held.
func (l *htmxLocation) snapshot() []func(string) {
	out := make([]func(string), 0, len(l.subs))
	for i := 0; i < l.nextID; i++ {
		if fn, ok := l.subs[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}
