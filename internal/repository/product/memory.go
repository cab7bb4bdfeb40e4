package product

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"marketplace-storefront/internal/domain"

	"github.com/google/uuid"
)

type memoryRepo struct {
	mu    sync.RWMutex
	byKey map[string]domain.Product
}

// NewMemory is an in-process catalogue for single-node runs and tests.
func NewMemory() Repository {
	return &memoryRepo{byKey: make(map[string]domain.Product)}
}

func (m *memoryRepo) List(_ context.Context, filter ListFilter) ([]domain.Product, error) {
	m.mu.RLock()
	all := make([]domain.Product, 0, len(m.byKey))
	for _, p := range m.byKey {
		all = append(all, p)
	}
	m.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].Key < all[j].Key
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	cats := make(map[string]bool, len(filter.Filters.Categories))
	for _, c := range filter.Filters.Categories {
		cats[strings.ToLower(strings.TrimSpace(c))] = true
	}
	var result []domain.Product
	for _, p := range all {
		if query != "" && !strings.Contains(strings.ToLower(p.Title), query) && !strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if len(cats) > 0 && !cats[strings.ToLower(p.Category)] {
			continue
		}
		if !inPriceBand(p, filter.Filters) {
			continue
		}
		result = append(result, p)
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.byKey[id]; ok {
		return &p, nil
	}
	for _, p := range m.byKey {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memoryRepo) Upsert(_ context.Context, product domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.byKey[product.Key]; ok {
		product.ID = existing.ID
		product.CreatedAt = existing.CreatedAt
	} else {
		if product.ID == "" {
			product.ID = uuid.NewString()
		}
		product.CreatedAt = time.Now().UTC()
	}
	m.byKey[product.Key] = product
	return &product, nil
}
