package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned when a session id is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// TokenStore keeps notes API tokens by session id.
type TokenStore interface {
	Save(ctx context.Context, sessionID, token string, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}

type memEntry struct {
	token   string
	expires time.Time // zero means no expiry
}

// Memory is an in-process TokenStore. Expired entries are dropped on read.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memEntry), now: time.Now}
}

func (m *Memory) Save(_ context.Context, sessionID, token string, ttl time.Duration) error {
	e := memEntry{token: token}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[sessionID] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) Get(_ context.Context, sessionID string) (string, error) {
	m.mu.RLock()
	e, ok := m.entries[sessionID]
	m.mu.RUnlock()
	if !ok {
		return "", ErrSessionNotFound
	}
	if !m.expired(e) {
		return e.token, nil
	}

	// A Save may have replaced the entry since the read lock was released.
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok = m.entries[sessionID]
	if !ok {
		return "", ErrSessionNotFound
	}
	if m.expired(e) {
		delete(m.entries, sessionID)
		return "", ErrSessionNotFound
	}
	return e.token, nil
}

func (m *Memory) expired(e memEntry) bool {
	return !e.expires.IsZero() && !m.now().Before(e.expires)
}

func (m *Memory) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.entries, sessionID)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

// Purge removes every expired session and returns how many were dropped.
func (m *Memory) Purge(context.Context) (int, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.entries {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(m.entries, id)
			n++
		}
	}
	return n, nil
}

// Count returns the number of unexpired sessions.
func (m *Memory) Count(context.Context) (int, error) {
	now := m.now()
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, e := range m.entries {
		if e.expires.IsZero() || now.Before(e.expires) {
			n++
		}
	}
	return n, nil
}
