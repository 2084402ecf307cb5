package session

import "sync"

// Provides shared key-value state for all image builds in one run.
//
// The store is the only state shared across concurrently running workflows;
// everything else is owned by a single build. Implementations must be safe
// for concurrent use.
type Store interface {

	// Returns the value for key and whether it was present.
	Get(key string) (string, bool)

	// Stores the value under key, replacing any previous value.
	Set(key, value string)
}

// A map-backed [Store].
type MemoryStore struct {
	mu     sync.Mutex        // Guards values.
	values map[string]string // Stored entries.
}

// Creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Returns the value for key and whether it was present.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	return v, ok
}

// Stores the value under key, replacing any previous value.
func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
}
