package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionData is stored per issued token.
type SessionData struct {
	UserID    string `json:"user_id"`
	UserAgent string `json:"userAgent"`
	CreatedAt int64  `json:"created_at"`
}

// SessionStore keeps one record per live token, keyed "<user id>:<signature>".
type SessionStore interface {
	Save(ctx context.Context, key string, session SessionData, ttl time.Duration) error
	Get(ctx context.Context, key string) (SessionData, error)
	Delete(ctx context.Context, key string) error
}

func sessionKey(userID, signature string) string {
	return userID + ":" + signature
}

type memorySession struct {
	data      SessionData
	expiresAt time.Time
}

// MemorySessions is a process-local SessionStore used when no Couchbase
// cluster is configured, and in tests.
type MemorySessions struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	now      func() time.Time
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (m *MemorySessions) Save(_ context.Context, key string, session SessionData, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[key] = memorySession{data: session, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *MemorySessions) Get(_ context.Context, key string) (SessionData, error) {
	m.mu.RLock()
	s, ok := m.sessions[key]
	m.mu.RUnlock()

	if !ok {
		return SessionData{}, ErrSessionNotFound
	}
	if !m.now().Before(s.expiresAt) {
		m.mu.Lock()
		delete(m.sessions, key)
		m.mu.Unlock()
		return SessionData{}, ErrSessionNotFound
	}
	return s.data, nil
}

func (m *MemorySessions) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[key]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, key)
	return nil
}
