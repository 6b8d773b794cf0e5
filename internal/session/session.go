// Package session manages concurrent-safe handles onto dive models,
// keyed by UUID, for use by the HTTP API and sensor link.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deepwater-eng/buhlmann"
)

// ErrNotFound is returned when a session ID has no corresponding session.
var ErrNotFound = errors.New("session: not found")

// Session wraps a Model with a mutex so it can be shared across HTTP
// handler goroutines and an optional serial sensor feed.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu    sync.Mutex
	model *buhlmann.Model
}

// WithLock runs fn with the session's model locked, exposing exclusive
// access for read-modify-write style operations.
func (s *Session) WithLock(fn func(m *buhlmann.Model) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.model)
}

// Snapshot returns a point-in-time copy of the underlying model, safe to
// read without holding the session lock afterward.
func (s *Session) Snapshot() *buhlmann.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Clone()
}

// Manager owns the set of live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[uuid.UUID]*Session)}
}

// Create starts a new session with the given model configuration.
func (m *Manager) Create(cfg buhlmann.Config) (*Session, error) {
	model, err := buhlmann.New(cfg)
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		model:     model,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns the session for id, or ErrNotFound.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete removes a session. It is not an error to delete a session that
// does not exist.
func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// List returns the IDs of every live session.
func (m *Manager) List() []uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}
