package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/cropsight-org/cropsight/engine"
)

// ============================================================================
// SESSION — per-user filter state
// ============================================================================
// The computation is stateless given its inputs, so serving several users
// concurrently only requires that each session hold its own filter state
// and recompute independently. Nothing here mutates shared tables.
// ============================================================================

// State is one user session: an ID plus the current filter set per view.
type State struct {
	ID string

	mu      sync.RWMutex
	filters map[string]engine.Filters
}

// SetFilters replaces the filter set for a view.
func (s *State) SetFilters(view string, f engine.Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters[view] = f
}

// Filters returns the current filter set for a view (empty if unset).
func (s *State) Filters(view string) engine.Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f, ok := s.filters[view]; ok {
		return f
	}
	return engine.Filters{}
}

// Manager tracks live sessions by ID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*State)}
}

// Open creates a new session with a fresh ID.
func (m *Manager) Open() *State {
	s := &State{
		ID:      uuid.NewString(),
		filters: make(map[string]engine.Filters),
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s
}

// Get returns the session for an ID, if it exists.
func (m *Manager) Get(id string) (*State, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close discards a session.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
