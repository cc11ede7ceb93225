// Package session keeps per-browser conversation state in memory.
// Sessions hold the ordered turn log and the generation settings; nothing
// here survives a process restart.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zinister/mentor/internal/domain"
)

// Manager owns all live sessions behind a single lock.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*domain.Session)}
}

// Create starts a new session with default settings.
func (m *Manager) Create() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	s := &domain.Session{
		ID:        uuid.New().String(),
		Settings:  domain.DefaultSettings(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.sessions[s.ID] = s
	return snapshot(s)
}

// Get returns a copy of the session.
func (m *Manager) Get(id string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return snapshot(s), nil
}

// AppendTurn appends a turn to the session's transcript.
func (m *Manager) AppendTurn(id, role, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Turns = append(s.Turns, domain.Turn{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
	s.UpdatedAt = time.Now()
	return nil
}

// History returns a copy of the session's ordered turns.
func (m *Manager) History(id string) ([]domain.Turn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	turns := make([]domain.Turn, len(s.Turns))
	copy(turns, s.Turns)
	return turns, nil
}

// UpdateSettings applies the provided controls, clamped to the supported
// ranges, and returns the resulting settings.
func (m *Manager) UpdateSettings(id string, req domain.UpdateSettingsRequest) (domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return domain.Settings{}, domain.ErrNotFound
	}
	if req.Temperature != nil {
		s.Settings.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		s.Settings.MaxTokens = *req.MaxTokens
	}
	s.Settings.Clamp()
	s.UpdatedAt = time.Now()
	return s.Settings, nil
}

// Reset clears the session's transcript, keeping its settings.
func (m *Manager) Reset(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Turns = nil
	s.UpdatedAt = time.Now()
	return nil
}

// Delete ends the session and drops its state.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func snapshot(s *domain.Session) *domain.Session {
	out := *s
	out.Turns = make([]domain.Turn, len(s.Turns))
	copy(out.Turns, s.Turns)
	return &out
}
