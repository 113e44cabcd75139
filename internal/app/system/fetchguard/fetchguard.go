// Package fetchguard drops responses to fetches that were overtaken by a
// newer fetch for the same list.
//
// Each fetch takes a Ticket tagged with the criteria it was issued for.
// Starting another fetch for the same key supersedes every earlier ticket,
// so a slow response for old criteria can no longer overwrite state built
// from newer ones.
package fetchguard

import "sync"

// Ticket identifies one in-flight fetch.
type Ticket struct {
	Key string
	Tag string
	seq uint64
}

// Guard tracks the latest ticket per key. The zero value is ready to use
// and it is safe for concurrent use.
type Guard struct {
	mu     sync.Mutex
	seq    uint64
	latest map[string]Ticket
}

// Begin issues a ticket for key, superseding earlier ones.
func (g *Guard) Begin(key, tag string) Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.latest == nil {
		g.latest = make(map[string]Ticket)
	}
	g.seq++
	t := Ticket{Key: key, Tag: tag, seq: g.seq}
	g.latest[key] = t
	return t
}

// Current reports whether t is still the latest ticket for its key.
func (g *Guard) Current(t Ticket) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current(t)
}

// Latest returns the tag of the newest ticket for key.
func (g *Guard) Latest(key string) (tag string, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	t, ok := g.latest[key]
	return t.Tag, ok
}

// Commit runs fn only if t is still current, holding the guard so no newer
// Begin can slip in between the check and fn. fn must not call back into
// the guard. It reports whether fn ran.
func (g *Guard) Commit(t Ticket, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.current(t) {
		return false
	}
	if fn != nil {
		fn()
	}
	return true
}

func (g *Guard) current(t Ticket) bool {
	l, ok := g.latest[t.Key]
	return ok && l.seq == t.seq
}
