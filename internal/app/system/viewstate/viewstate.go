// Package viewstate holds the transient per-view state of a signed-in
// session: the last good list snapshots, the stale-fetch guard, the
// remembered section of each tabbed page, and the name cache. Nothing here
// is persisted; a view that sits idle past its TTL is swept and rebuilt
// from scratch on the next request, just like a page reload.
package viewstate

import (
	"sync"
	"time"

	"github.com/trueportme/adminconsole/internal/app/system/fetchguard"
	"github.com/trueportme/adminconsole/internal/app/system/filterset"
	"github.com/trueportme/adminconsole/internal/app/system/namecache"
)

// Snapshot is the last successful fetch of one list.
type Snapshot struct {
	Records   []filterset.Record
	Total     int
	Tag       string
	FetchedAt time.Time
}

// View is the state owned by one browser view.
type View struct {
	ID string

	names *namecache.Cache
	guard fetchguard.Guard

	mu        sync.Mutex
	snapshots map[string]Snapshot
	sections  map[string]string
	lastSeen  time.Time

	loaderOnce sync.Once
	loader     *namecache.Loader
}

func newView(id string, now time.Time, seed *namecache.Cache) *View {
	names := namecache.New()
	if seed != nil {
		names.RecordNames(seed.Entries()...)
	}
	return &View{
		ID:        id,
		names:     names,
		snapshots: make(map[string]Snapshot),
		sections:  make(map[string]string),
		lastSeen:  now,
	}
}

// Names returns the view's name cache.
func (v *View) Names() *namecache.Cache { return v.names }

// Guard returns the view's stale-fetch guard.
func (v *View) Guard() *fetchguard.Guard { return &v.guard }

// NameLoader returns the view's batched name loader, creating it with fetch
// on first use.
func (v *View) NameLoader(fetch namecache.FetchFunc) *namecache.Loader {
	v.loaderOnce.Do(func() {
		v.loader = namecache.NewLoader(v.names, fetch)
	})
	return v.loader
}

// Snapshot returns the last stored snapshot for key.
func (v *View) Snapshot(key string) (Snapshot, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, ok := v.snapshots[key]
	return s, ok
}

// Store saves snap under t.Key if t is still the newest fetch for that key.
// It reports false for a superseded ticket, leaving the old snapshot.
func (v *View) Store(t fetchguard.Ticket, snap Snapshot) bool {
	if snap.Tag == "" {
		snap.Tag = t.Tag
	}
	return v.guard.Commit(t, func() {
		v.mu.Lock()
		v.snapshots[t.Key] = snap
		v.mu.Unlock()
	})
}

// Forget drops the snapshot for key, forcing the next render to refetch.
func (v *View) Forget(key string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.snapshots, key)
}

// Section returns the section last shown on page, or "".
func (v *View) Section(page string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sections[page]
}

// SetSection remembers the section shown on page.
func (v *View) SetSection(page, section string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sections[page] = section
}

func (v *View) touch(now time.Time) {
	v.mu.Lock()
	v.lastSeen = now
	v.mu.Unlock()
}

func (v *View) idleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

// Registry maps view ids to views.
type Registry struct {
	ttl       time.Duration
	now       func() time.Time
	directory *namecache.Cache

	mu    sync.Mutex
	views map[string]*View
}

// NewRegistry returns a registry whose views expire after ttl of
// inactivity. A ttl <= 0 disables expiry.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{ttl: ttl, now: time.Now, views: make(map[string]*View)}
}

// SetDirectory sets the shared cache new views are seeded from. The
// verifier warm-up task keeps it filled.
func (r *Registry) SetDirectory(c *namecache.Cache) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.directory = c
}

// SetClock replaces the time source; used by tests.
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// TTL returns the idle timeout.
func (r *Registry) TTL() time.Duration { return r.ttl }

// Get returns the view for id, creating it when missing, and marks it used.
func (r *Registry) Get(id string) *View {
	r.mu.Lock()
	now := r.now()
	v, ok := r.views[id]
	if !ok {
		v = newView(id, now, r.directory)
		r.views[id] = v
	}
	r.mu.Unlock()

	v.touch(now)
	return v
}

// Touch marks the view for id used without creating it. It reports
// whether the view was still live.
func (r *Registry) Touch(id string) bool {
	r.mu.Lock()
	now := r.now()
	v, ok := r.views[id]
	r.mu.Unlock()
	if ok {
		v.touch(now)
	}
	return ok
}

// Drop removes the view for id, as on sign-out.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, id)
}

// Sweep removes views idle longer than the TTL and returns how many went.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.ttl)
	n := 0
	for id, v := range r.views {
		if v.idleSince().Before(cutoff) {
			delete(r.views, id)
			n++
		}
	}
	return n
}

// Len returns the number of live views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}
