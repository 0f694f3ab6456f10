package store

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore keeps cookies in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	clock   Clock
	entries map[string]memoryEntry
}

type MemoryOption func(*MemoryStore)

// WithClock overrides the clock used for expiry.
func WithClock(c Clock) MemoryOption {
	return func(m *MemoryStore) { m.clock = c }
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{clock: SystemClock{}, entries: make(map[string]memoryEntry)}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *MemoryStore) Set(ctx context.Context, key, value string, ttlDays int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{value: value, expiresAt: expiry(m.clock.Now(), ttlDays)}
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	if !m.clock.Now().Before(e.expiresAt) {
		delete(m.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *MemoryStore) Clear(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

// ExpiresAt returns the stored expiry of key, expired or not.
func (m *MemoryStore) ExpiresAt(key string) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	return e.expiresAt, ok
}

// Len returns the number of entries currently held, including expired
// ones not yet evicted by Get.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
