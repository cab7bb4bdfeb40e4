package cart

import (
	"context"
	"math"
	"strings"
	"sync"

	"marketplace-storefront/internal/currency"
	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/logging"
	"marketplace-storefront/internal/storage"

	"go.uber.org/zap"
)

// Service is one shopper's cart. Every mutation is written through to the
// blob store; a failed write is logged and the in-memory state is kept.
type Service struct {
	mu     sync.Mutex
	owner  string
	store  storage.Store
	logger *zap.Logger
	items  []domain.CartLineItem
	open   bool
}

// Summary is a point-in-time view of the cart.
type Summary struct {
	Items      []domain.CartLineItem `json:"items"`
	TotalItems int                   `json:"totalItems"`
	TotalPrice float64               `json:"totalPrice"`
	Open       bool                  `json:"open"`
}

func New(owner string, store storage.Store, logger *zap.Logger) *Service {
	return &Service{owner: owner, store: store, logger: logging.OrNop(logger)}
}

// Load replaces the in-memory cart with the persisted snapshot. Anything that
// cannot be read leaves an empty cart.
func (s *Service) Load(ctx context.Context) {
	var items []domain.CartLineItem
	if err := storage.LoadJSON(ctx, s.store, s.owner, storage.KeyCart, &items); err != nil {
		s.logger.Error("cart load failed", zap.String("owner", s.owner), zap.Error(err))
		items = nil
	}
	for i := range items {
		items[i].Currency = s.normalizeCurrency(items[i].ID, items[i].Currency, false)
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// AddToCart merges item into the cart and opens it. An existing line grows by
// quantity up to its stock ceiling; if it is already at the ceiling nothing
// changes and NoticeMaximumReached is returned. New lines are appended as given.
func (s *Service) AddToCart(ctx context.Context, item domain.CartLineItem, quantity int) domain.Notice {
	if quantity <= 0 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true

	if idx := s.indexOf(item.ID); idx >= 0 {
		line := &s.items[idx]
		if item.StockQuantity != nil {
			stock := *item.StockQuantity
			line.StockQuantity = &stock
		}
		next := line.Quantity + quantity
		if line.StockQuantity != nil && next > *line.StockQuantity {
			next = *line.StockQuantity
		}
		if next <= line.Quantity {
			return domain.NoticeMaximumReached
		}
		line.Quantity = next
		s.persist(ctx)
		return domain.NoticeAddedToCart
	}

	item.ID = strings.TrimSpace(item.ID)
	item.Currency = s.normalizeCurrency(item.ID, item.Currency, true)
	item.Quantity = quantity
	s.items = append(s.items, item)
	s.persist(ctx)
	return domain.NoticeAddedToCart
}

// RemoveFromCart deletes the line with id. Missing ids are a no-op.
func (s *Service) RemoveFromCart(ctx context.Context, id string) domain.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, id)
}

func (s *Service) removeLocked(ctx context.Context, id string) domain.Notice {
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.NoticeNone
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.persist(ctx)
	return domain.NoticeRemovedFromCart
}

// UpdateQuantity sets a line's quantity, capped at its stock ceiling. A
// quantity below 1, before or after the cap, removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, id string, quantity int) domain.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.NoticeNone
	}
	line := &s.items[idx]
	if line.StockQuantity != nil && quantity > *line.StockQuantity {
		quantity = *line.StockQuantity
	}
	if quantity < 1 {
		return s.removeLocked(ctx, id)
	}
	if quantity == line.Quantity {
		return domain.NoticeNone
	}
	line.Quantity = quantity
	s.persist(ctx)
	return domain.NoticeNone
}

func (s *Service) ClearCart(ctx context.Context) domain.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persist(ctx)
	return domain.NoticeCartCleared
}

func (s *Service) SetOpen(open bool) {
	s.mu.Lock()
	s.open = open
	s.mu.Unlock()
}

func (s *Service) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Items returns a copy of the line items.
func (s *Service) Items() []domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

func (s *Service) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItemsLocked()
}

// TotalPrice is the cart value in the base currency. Lines with an unusable
// price, quantity or conversion are skipped and logged, never summed.
func (s *Service) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPriceLocked()
}

func (s *Service) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		Items:      s.copyItems(),
		TotalItems: s.totalItemsLocked(),
		TotalPrice: s.totalPriceLocked(),
		Open:       s.open,
	}
}

func (s *Service) totalItemsLocked() int {
	total := 0
	for _, line := range s.items {
		if line.Quantity > 0 {
			total += line.Quantity
		}
	}
	return total
}

func (s *Service) totalPriceLocked() float64 {
	total := 0.0
	for _, line := range s.items {
		base, skip := lineBaseTotal(line)
		if skip != nil {
			s.logger.Warn("cart line excluded from total",
				zap.String("owner", s.owner),
				zap.String("line_id", line.ID),
				zap.String("reason", skip.Reason),
			)
			continue
		}
		total += base
	}
	return total
}

func lineBaseTotal(line domain.CartLineItem) (float64, *domain.ValidationSkip) {
	if !finitePositive(line.Price) {
		return 0, &domain.ValidationSkip{LineID: line.ID, Reason: "invalid price"}
	}
	if line.Quantity <= 0 {
		return 0, &domain.ValidationSkip{LineID: line.ID, Reason: "invalid quantity"}
	}
	code := currency.Base
	if line.Currency != "" {
		code = currency.Code(strings.ToUpper(line.Currency))
	}
	unit := currency.ToBase(line.Price, code)
	if !finitePositive(unit) {
		return 0, &domain.ValidationSkip{LineID: line.ID, Reason: "conversion failed"}
	}
	return unit * float64(line.Quantity), nil
}

func finitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func (s *Service) normalizeCurrency(lineID, code string, strict bool) string {
	normalized, err := currency.Normalize(code)
	if err != nil {
		s.logger.Warn("cart line currency not supported",
			zap.String("line_id", lineID),
			zap.String("currency", code),
			zap.Error(err),
		)
		if !strict {
			return code
		}
	}
	return string(normalized)
}

func (s *Service) indexOf(id string) int {
	id = strings.TrimSpace(id)
	for i, line := range s.items {
		if line.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) copyItems() []domain.CartLineItem {
	out := make([]domain.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Service) persist(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []domain.CartLineItem{}
	}
	if err := storage.SaveJSON(ctx, s.store, s.owner, storage.KeyCart, items); err != nil {
		s.logger.Error("cart persist failed", zap.String("owner", s.owner), zap.Error(err))
	}
}
