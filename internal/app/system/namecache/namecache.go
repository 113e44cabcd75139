// Package namecache remembers display names for ids that list data only
// references, such as the verifiers assigned to event roles. Names arrive
// piecemeal from several API responses over the life of a view.
package namecache

import (
	"sort"
	"sync"
)

// Entry pairs an id with a display name.
type Entry struct {
	ID   string
	Name string
}

// Cache maps id to the best-known display name. It is safe for concurrent
// use. Names are only ever added or overwritten, never removed.
type Cache struct {
	mu    sync.RWMutex
	names map[string]string
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{names: make(map[string]string)}
}

// RecordNames merges entries into the cache. Entries with an empty id or
// name are skipped. A later entry for an id replaces the earlier one; other
// ids are untouched.
func (c *Cache) RecordNames(entries ...Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entries {
		if e.ID == "" || e.Name == "" {
			continue
		}
		c.names[e.ID] = e.Name
	}
}

// ResolveName returns the cached name for id, else inline when non-empty,
// else id itself.
func (c *Cache) ResolveName(id, inline string) string {
	if name, ok := c.Name(id); ok {
		return name
	}
	if inline != "" {
		return inline
	}
	return id
}

// Name returns the cached name for id.
func (c *Cache) Name(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.names[id]
	return name, ok
}

// Missing returns the distinct non-empty ids with no cached name, in input
// order.
func (c *Cache) Missing(ids []string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := c.names[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Len returns the number of cached names.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names)
}

// Entries returns every cached name, sorted by id.
func (c *Cache) Entries() []Entry {
	c.mu.RLock()
	out := make([]Entry, 0, len(c.names))
	for id, name := range c.names {
		out = append(out, Entry{ID: id, Name: name})
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
