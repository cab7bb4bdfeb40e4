package product

import (
	"context"
	"fmt"
	"strings"

	"marketplace-storefront/internal/currency"
	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/pricing"
	productrepo "marketplace-storefront/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter productrepo.ListFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: product id required", domain.ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, id)
}

// Save validates and stores a listing. Prices under the category minimum are
// rejected with *pricing.BelowMinimumError.
func (s *Service) Save(ctx context.Context, p domain.Product) (*domain.Product, error) {
	p.Key = strings.TrimSpace(p.Key)
	p.Title = strings.TrimSpace(p.Title)
	if p.Key == "" {
		return nil, fmt.Errorf("%w: key required", domain.ErrInvalidInput)
	}
	if p.Title == "" {
		return nil, fmt.Errorf("%w: title required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(p.SellerID) == "" {
		return nil, fmt.Errorf("%w: sellerId required", domain.ErrInvalidInput)
	}
	code, err := currency.Normalize(p.Currency)
	if err != nil {
		return nil, err
	}
	p.Currency = string(code)
	if p.StockQuantity != nil && *p.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stockQuantity must not be negative", domain.ErrInvalidInput)
	}
	if err := pricing.ValidateMinimumPrice(p.Price, code, p.Category); err != nil {
		return nil, err
	}
	return s.repo.Upsert(ctx, p)
}
