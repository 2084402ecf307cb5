package session

import (
	"encoding/json"
	"log/slog"
	"sort"
)

// Records image references that have already been pulled during this run.
//
// The cache serializes to a single string so it can live in a [Store] entry
// shared by all builds of the run. It is not safe for concurrent use on its
// own; [Session] guards every read-modify-write with the run's mutex.
type PullCache struct {
	refs map[string]struct{} // Pulled references, keyed by the exact string that was requested.
}

// Creates an empty pull cache.
func NewPullCache() *PullCache {
	return &PullCache{refs: make(map[string]struct{})}
}

// Reconstructs a pull cache from its serialized form.
//
// An empty string yields an empty cache. A payload that does not parse also
// yields an empty cache: a corrupt cache only costs redundant pulls, which is
// preferable to failing the run.
func DeserializePullCache(serialized string) *PullCache {
	cache := NewPullCache()
	if serialized == "" {
		return cache
	}

	var refs []string
	if err := json.Unmarshal([]byte(serialized), &refs); err != nil {
		slog.Warn("discarding corrupt pull cache", "error", err)
		return cache
	}

	for _, ref := range refs {
		cache.Add(ref)
	}
	return cache
}

// Reports whether the reference has been recorded as pulled.
func (c *PullCache) Contains(ref string) bool {
	_, ok := c.refs[ref]
	return ok
}

// Records a reference as pulled. Adding the same reference again has no effect.
func (c *PullCache) Add(ref string) {
	c.refs[ref] = struct{}{}
}

// Returns the recorded references in sorted order.
func (c *PullCache) Refs() []string {
	refs := make([]string, 0, len(c.refs))
	for ref := range c.refs {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// Returns the serialized form of the cache, suitable for [DeserializePullCache].
//
// Entries are sorted so equal caches serialize identically.
func (c *PullCache) Serialize() string {
	data, _ := json.Marshal(c.Refs())
	return string(data)
}
