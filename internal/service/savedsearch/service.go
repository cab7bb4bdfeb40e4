package savedsearch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/logging"
	"marketplace-storefront/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxSaved is how many searches are kept; the oldest are evicted first.
const MaxSaved = 10

// Service keeps a shopper's saved searches, most recent first.
type Service struct {
	mu       sync.Mutex
	owner    string
	store    storage.Store
	logger   *zap.Logger
	now      func() time.Time
	searches []domain.SavedSearch
}

func New(owner string, store storage.Store, logger *zap.Logger) *Service {
	return &Service{
		owner:  owner,
		store:  store,
		logger: logging.OrNop(logger),
		now:    time.Now,
	}
}

func (s *Service) Load(ctx context.Context) {
	var searches []domain.SavedSearch
	if err := storage.LoadJSON(ctx, s.store, s.owner, storage.KeySavedSearches, &searches); err != nil {
		s.logger.Error("saved searches load failed", zap.String("owner", s.owner), zap.Error(err))
		searches = nil
	}
	if len(searches) > MaxSaved {
		searches = searches[:MaxSaved]
	}
	s.mu.Lock()
	s.searches = searches
	s.mu.Unlock()
}

// Save records a search at the front of the list.
func (s *Service) Save(ctx context.Context, label, query string, filters domain.SearchFilters) (domain.SavedSearch, error) {
	label = strings.TrimSpace(label)
	query = strings.TrimSpace(query)
	if label == "" {
		label = query
	}
	if label == "" && len(filters.Categories) == 0 && filters.MinPrice == nil && filters.MaxPrice == nil {
		return domain.SavedSearch{}, fmt.Errorf("%w: query or filters required", domain.ErrInvalidInput)
	}
	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
		return domain.SavedSearch{}, fmt.Errorf("%w: minPrice greater than maxPrice", domain.ErrInvalidInput)
	}
	saved := domain.SavedSearch{
		ID:        uuid.NewString(),
		Label:     label,
		Query:     query,
		Filters:   filters,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]domain.SavedSearch, 0, len(s.searches)+1)
	next = append(next, saved)
	next = append(next, s.searches...)
	if len(next) > MaxSaved {
		next = next[:MaxSaved]
	}
	s.searches = next
	s.persist(ctx)
	return saved, nil
}

// Delete removes the search with id. It reports domain.ErrNotFound for unknown ids.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, search := range s.searches {
		if search.ID == id {
			s.searches = append(s.searches[:i], s.searches[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Service) List() []domain.SavedSearch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SavedSearch, len(s.searches))
	copy(out, s.searches)
	return out
}

func (s *Service) persist(ctx context.Context) {
	searches := s.searches
	if searches == nil {
		searches = []domain.SavedSearch{}
	}
	if err := storage.SaveJSON(ctx, s.store, s.owner, storage.KeySavedSearches, searches); err != nil {
		s.logger.Error("saved searches persist failed", zap.String("owner", s.owner), zap.Error(err))
	}
}
