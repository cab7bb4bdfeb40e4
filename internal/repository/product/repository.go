package product

import (
	"context"

	"marketplace-storefront/internal/domain"
)

// ListFilter narrows List. Prices are compared in base currency.
type ListFilter struct {
	Query   string
	Filters domain.SearchFilters
	Limit   int
}

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}
