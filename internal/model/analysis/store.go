package analysis

import "sync"

// Store exposes analysis retention for handlers and services.
type Store interface {
	Put(a Analysis)
	FindByID(id string) (Analysis, bool)
}

// MemoryStore implements Store with a mutex-guarded map, suitable for the
// request-per-run lifecycle where results only need to outlive the upload
// request.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Analysis
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]Analysis)}
}

// Put stores a finished analysis keyed by its ID.
func (s *MemoryStore) Put(a Analysis) {
	s.mu.Lock()
	s.items[a.ID] = a
	s.mu.Unlock()
}

// FindByID looks up an analysis by identifier.
func (s *MemoryStore) FindByID(id string) (Analysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.items[id]
	return a, ok
}
