package storage

import (
	"context"
	"sync"

	"marketplace-storefront/internal/domain"
)

// Memory is a process-local Store.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func memoryKey(owner, key string) string {
	return owner + "\x00" + key
}

func (m *Memory) Get(_ context.Context, owner, key string) ([]byte, error) {
	if err := checkArgs(owner, key); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.blobs[memoryKey(owner, key)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Put(_ context.Context, owner, key string, value []byte) error {
	if err := checkArgs(owner, key); err != nil {
		return err
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.mu.Lock()
	m.blobs[memoryKey(owner, key)] = v
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, owner, key string) error {
	if err := checkArgs(owner, key); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.blobs, memoryKey(owner, key))
	m.mu.Unlock()
	return nil
}
