package extract

import (
	"sync"

	"github.com/cropsight-org/cropsight/schema"
)

// ============================================================================
// STORE — explicit per-source memoization of loaded extracts
// ============================================================================
// Extracts are static for a session, so each source is read at most once per
// process: the first Load for a name runs the loader, later Loads return
// the cached table. There is no TTL — invalidation is explicit, which keeps
// reload behavior testable instead of tied to process lifetime.
//
// Load failures are not cached; a view that failed to load can retry on the
// next interaction without poisoning the store.
// ============================================================================

// Loader produces a raw table for a source on demand.
type Loader func() (*schema.Table, error)

// Store memoizes loaded extracts by source name. Safe for concurrent use
// across sessions — the cached tables themselves are never mutated.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*schema.Table
}

// NewStore creates an empty extract store.
func NewStore() *Store {
	return &Store{tables: make(map[string]*schema.Table)}
}

// Load returns the cached table for name, running the loader on first use.
func (s *Store) Load(name string, load Loader) (*schema.Table, error) {
	s.mu.RLock()
	t, ok := s.tables[name]
	s.mu.RUnlock()
	if ok {
		return t, nil
	}

	t, err := load()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another session may have loaded the same source meanwhile; keep the
	// first result so every reader sees one snapshot.
	if existing, ok := s.tables[name]; ok {
		return existing, nil
	}
	s.tables[name] = t
	return t, nil
}

// Invalidate drops one source so the next Load re-reads it.
func (s *Store) Invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, name)
}

// Reset drops every cached source.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = make(map[string]*schema.Table)
}

// Cached reports whether a source is currently memoized.
func (s *Store) Cached(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tables[name]
	return ok
}
