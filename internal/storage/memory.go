package storage

import (
	"context"
	"sync"

	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/models"
)

// MemoryStore holds all sessions in memory. No TTL and no size bound:
// abandoned dialogues stay until the process restarts.
type MemoryStore struct {
	sessions map[string]*models.Session
	mu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.Session),
	}
}

func (m *MemoryStore) Get(_ context.Context, senderID string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[senderID]
	if !exists {
		return nil, nil
	}
	// Copy so callers can't mutate stored state without a Put
	copied := *session
	return &copied, nil
}

func (m *MemoryStore) Put(_ context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *session
	m.sessions[session.SenderID] = &copied
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, senderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, senderID)
	return nil
}

// Len reports the number of active sessions (used by the status endpoint)
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
