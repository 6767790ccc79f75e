package vault

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by backends when a slot has never been written.
var ErrNotFound = errors.New("vault slot not found")

// Backend stores raw slot payloads.
type Backend interface {
	Get(ctx context.Context, key Key) ([]byte, error)
	Put(ctx context.Context, key Key, value []byte) error
	Delete(ctx context.Context, key Key) error
}

// MemoryBackend keeps slots in process memory.
type MemoryBackend struct {
	mu    sync.RWMutex
	slots map[Key][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{slots: make(map[Key][]byte)}
}

func (m *MemoryBackend) Get(_ context.Context, key Key) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *MemoryBackend) Put(_ context.Context, key Key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}
