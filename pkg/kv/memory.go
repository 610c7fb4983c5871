package kv

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the test adapter: a mutex-guarded map with optional failure
// injection so best-effort write semantics can be exercised.
type MemoryStore struct {
	mu       sync.Mutex
	values   map[string]string
	counters map[string]int64

	// FailWrites makes Set/SetWithTTL return the given error when non-nil.
	FailWrites error
	// FailReads makes Get return the given error when non-nil.
	FailReads error
}

var _ Store = (*MemoryStore)(nil)
var _ Counter = (*MemoryStore)(nil)

func NewMemory() *MemoryStore {
	return &MemoryStore{
		values:   map[string]string{},
		counters: map[string]int64{},
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads != nil {
		return "", m.FailReads
	}
	value, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.values[key] = value
	return nil
}

// SetWithTTL ignores the expiry; the in-memory store lives only for a test.
func (m *MemoryStore) SetWithTTL(ctx context.Context, key, value string, _ time.Duration) error {
	return m.Set(ctx, key, value)
}

func (m *MemoryStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
		delete(m.counters, key)
	}
	return nil
}

func (m *MemoryStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[key]++
	return m.counters[key], nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// Len reports the number of stored keys.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}
