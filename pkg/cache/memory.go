package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store with lazy TTL expiry.
// Entries are dropped on read once past their expiry; there is no
// background eviction.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	now     func() time.Time
}

type memEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memEntry),
		now:     time.Now,
	}
}

// Get returns the stored bytes if present and unexpired
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	entry, found := m.entries[key]
	m.mu.RUnlock()

	if !found {
		return nil, false, nil
	}

	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		// A Set may have replaced the entry between the two locks;
		// only drop it if the current entry is still expired.
		if cur, ok := m.entries[key]; ok && m.now().After(cur.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}

	return entry.data, true, nil
}

// Set stores bytes under key with a TTL
func (m *MemoryStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memEntry{
		data:      data,
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

// Clear removes every entry
func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]memEntry)
	return nil
}

// Len returns the number of stored entries, expired or not
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
