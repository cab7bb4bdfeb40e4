package token

import (
	"context"
	"sync"
	"time"

	"marketplace-storefront/internal/domain"
)

type memoryRepo struct {
	mu     sync.RWMutex
	tokens map[string]Token
}

// NewMemory keeps tokens in process memory. Tokens do not survive a restart.
func NewMemory() Repository {
	return &memoryRepo{tokens: make(map[string]Token)}
}

func (m *memoryRepo) Create(_ context.Context, token Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.tokens[token.Token]; exists {
		return domain.ErrAlreadyExists
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	m.tokens[token.Token] = token
	return nil
}

func (m *memoryRepo) Get(_ context.Context, token string) (*Token, error) {
	m.mu.RLock()
	t, ok := m.tokens[token]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *memoryRepo) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(m.tokens, token)
	return nil
}

func (m *memoryRepo) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for key, t := range m.tokens {
		if t.Expired(now) {
			delete(m.tokens, key)
			n++
		}
	}
	return n, nil
}
