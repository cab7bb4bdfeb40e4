package profile

import (
	"context"
	"sync"
	"time"

	"marketplace-storefront/internal/domain"
)

type memoryRepo struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
}

func NewMemory() Repository {
	return &memoryRepo{profiles: make(map[string]domain.Profile)}
}

func (m *memoryRepo) Get(_ context.Context, userID string) (*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *memoryRepo) GetCurrencyPreference(ctx context.Context, userID string) (string, error) {
	p, err := m.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return p.CurrencyPreference, nil
}

func (m *memoryRepo) SetCurrencyPreference(_ context.Context, userID, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[userID] = domain.Profile{UserID: userID, CurrencyPreference: code, UpdatedAt: time.Now().UTC()}
	return nil
}
