package storage

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	values    map[string]string
	expiresAt time.Time
}

// Memory keeps client data in process memory. Data does not survive a restart.
// It is safe for concurrent use by multiple goroutines.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	clients map[string]*memoryEntry
}

// NewMemory creates an in-memory store. A non-positive ttl keeps entries forever.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		clients: make(map[string]*memoryEntry),
	}
}

var _ Storage = (*Memory)(nil)

func (m *Memory) Load(_ context.Context, clientID string) (map[string]string, error) {
	if clientID == "" {
		return nil, ErrClientIDRequired
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string)
	e, ok := m.clients[clientID]
	if !ok || m.expired(e) {
		return out, nil
	}
	for k, v := range e.values {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) Save(_ context.Context, clientID string, values map[string]string) error {
	if clientID == "" {
		return ErrClientIDRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.clients[clientID]
	if !ok || m.expired(e) {
		e = &memoryEntry{values: make(map[string]string)}
		m.clients[clientID] = e
	}
	for k, v := range values {
		e.values[k] = v
	}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	return nil
}

func (m *Memory) Remove(_ context.Context, clientID string, keys ...string) error {
	if clientID == "" {
		return ErrClientIDRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.clients[clientID]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(e.values, k)
	}
	if len(e.values) == 0 {
		delete(m.clients, clientID)
	}
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

// Purge drops expired clients and reports how many were removed.
func (m *Memory) Purge(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, e := range m.clients {
		if m.expired(e) {
			delete(m.clients, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of clients held, including expired ones not yet purged.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Memory) expired(e *memoryEntry) bool {
	return !e.expiresAt.IsZero() && m.now().After(e.expiresAt)
}
