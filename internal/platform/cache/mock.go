package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Memory is an in-process Cache for tests and single-instance development.
// Values round-trip through JSON so callers observe the same copying semantics as Redis.
type Memory struct {
	mu       sync.RWMutex
	values   map[string][]byte
	versions map[string]int64

	// Err, when set, is returned from every call.
	Err error
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte), versions: make(map[string]int64)}
}

// Get implements Cache.
func (m *Memory) Get(_ context.Context, key string, dest any) error {
	if m.Err != nil {
		return m.Err
	}
	if key == "" {
		return ErrKeyEmpty
	}
	m.mu.RLock()
	data, ok := m.values[key]
	m.mu.RUnlock()
	if !ok {
		return ErrMiss
	}
	return json.Unmarshal(data, dest)
}

// Set implements Cache. TTL is ignored.
func (m *Memory) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if m.Err != nil {
		return m.Err
	}
	if key == "" {
		return ErrKeyEmpty
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.values[key] = data
	m.mu.Unlock()
	return nil
}

// Version implements Cache.
func (m *Memory) Version(_ context.Context, namespace string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.versions[namespace], nil
}

// Bump implements Cache.
func (m *Memory) Bump(_ context.Context, namespace string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	m.versions[namespace]++
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored values.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

var _ Cache = (*Memory)(nil)
