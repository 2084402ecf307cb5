package session

import (
	"sync"

	"github.com/google/uuid"
)

// Store key under which the serialized pull cache lives.
const pulledImagesKey = "images.previously-pulled"

// Owns the state shared by all image builds of one run.
//
// A session is created once per run (one CLI invocation, or one daemon
// lifetime) and injected by reference into every build workflow. The pull
// cache round-trips through the shared store on every access; the session's
// mutex spans each decide-pull-record sequence, so concurrent workflows
// neither lose cache updates nor pull the same reference twice.
type Session struct {
	id    string     // Run identifier, surfaced in log lines.
	store Store      // Shared property store holding the serialized pull cache.
	mu    sync.Mutex // Guards the pull cache read-modify-write cycle.
}

// Creates a session backed by the given store.
func New(store Store) *Session {
	return &Session{
		id:    uuid.NewString(),
		store: store,
	}
}

// Returns the run identifier.
func (s *Session) ID() string {
	return s.id
}

// Coordinates one pull decision for a reference.
//
// decide receives whether ref was already pulled this run and reports
// whether a pull is required. When it is, pull runs, and on success ref is
// recorded in the cache and the cache is persisted back into the store.
// The whole sequence holds the session mutex, serializing pull decisions
// across concurrent workflows.
func (s *Session) CoordinatePull(ref string, decide func(pulled bool) (bool, error), pull func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache := s.cache()

	required, err := decide(cache.Contains(ref))
	if err != nil {
		return err
	}
	if !required {
		return nil
	}

	if err := pull(); err != nil {
		return err
	}

	cache.Add(ref)
	s.store.Set(pulledImagesKey, cache.Serialize())
	return nil
}

// Returns the references pulled so far during this run, sorted.
func (s *Session) PulledImages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cache().Refs()
}

// Loads the current pull cache from the store. Callers must hold mu.
func (s *Session) cache() *PullCache {
	raw, ok := s.store.Get(pulledImagesKey)
	if !ok {
		return NewPullCache()
	}
	return DeserializePullCache(raw)
}
