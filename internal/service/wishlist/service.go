package wishlist

import (
	"context"
	"strings"
	"sync"

	"marketplace-storefront/internal/currency"
	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/logging"
	"marketplace-storefront/internal/storage"

	"go.uber.org/zap"
)

// Service is one shopper's wishlist. Identifiers are unique.
type Service struct {
	mu     sync.Mutex
	owner  string
	store  storage.Store
	logger *zap.Logger
	items  []domain.WishlistItem
}

func New(owner string, store storage.Store, logger *zap.Logger) *Service {
	return &Service{owner: owner, store: store, logger: logging.OrNop(logger)}
}

// Load replaces the in-memory list with the persisted one; read failures leave
// it empty. Duplicate ids in the blob are dropped.
func (s *Service) Load(ctx context.Context) {
	var items []domain.WishlistItem
	if err := storage.LoadJSON(ctx, s.store, s.owner, storage.KeyWishlist, &items); err != nil {
		s.logger.Error("wishlist load failed", zap.String("owner", s.owner), zap.Error(err))
		items = nil
	}
	seen := make(map[string]bool, len(items))
	deduped := items[:0]
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		if strings.TrimSpace(item.Currency) == "" {
			item.Currency = string(currency.Base)
		}
		deduped = append(deduped, item)
	}
	s.mu.Lock()
	s.items = deduped
	s.mu.Unlock()
}

// AddToWishlist stores item unless its id is already present.
func (s *Service) AddToWishlist(ctx context.Context, item domain.WishlistItem) domain.Notice {
	item.ID = strings.TrimSpace(item.ID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(item.ID) >= 0 {
		return domain.NoticeAlreadyInWishlist
	}
	code, err := currency.Normalize(item.Currency)
	if err != nil {
		s.logger.Warn("wishlist item currency not supported", zap.String("item_id", item.ID), zap.Error(err))
	}
	item.Currency = string(code)
	s.items = append(s.items, item)
	s.persist(ctx)
	return domain.NoticeAddedToWishlist
}

func (s *Service) RemoveFromWishlist(ctx context.Context, id string) domain.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.NoticeNone
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.persist(ctx)
	return domain.NoticeRemovedFromList
}

func (s *Service) IsInWishlist(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

func (s *Service) ClearWishlist(ctx context.Context) domain.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persist(ctx)
	return domain.NoticeWishlistCleared
}

func (s *Service) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Service) Items() []domain.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.WishlistItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Service) indexOf(id string) int {
	id = strings.TrimSpace(id)
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) persist(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []domain.WishlistItem{}
	}
	if err := storage.SaveJSON(ctx, s.store, s.owner, storage.KeyWishlist, items); err != nil {
		s.logger.Error("wishlist persist failed", zap.String("owner", s.owner), zap.Error(err))
	}
}
