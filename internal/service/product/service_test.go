package product

import (
	"context"
	"errors"
	"testing"

	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/pricing"
	productrepo "marketplace-storefront/internal/repository/product"
)

type stubRepo struct {
	lastUpsert domain.Product
	upserts    int
	lastFilter productrepo.ListFilter
}

func (s *stubRepo) List(_ context.Context, filter productrepo.ListFilter) ([]domain.Product, error) {
	s.lastFilter = filter
	return nil, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.upserts++
	s.lastUpsert = p
	p.ID = "generated"
	return &p, nil
}

func TestSave_Valid(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	got, err := svc.Save(context.Background(), domain.Product{Key: " mask ", Title: "Makonde mask", Price: 40, Currency: "usd", Category: "art", SellerID: "s1"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if got.ID != "generated" || repo.lastUpsert.Key != "mask" || repo.lastUpsert.Currency != "USD" {
		t.Fatalf("unexpected upsert %+v", repo.lastUpsert)
	}
}

func TestSave_Rejections(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	ctx := context.Background()
	neg := -1

	cases := []domain.Product{
		{Title: "x", Price: 10, SellerID: "s"},
		{Key: "k", Price: 10, SellerID: "s"},
		{Key: "k", Title: "x", Price: 10},
		{Key: "k", Title: "x", Price: 10, SellerID: "s", Currency: "ABC"},
		{Key: "k", Title: "x", Price: 10, SellerID: "s", StockQuantity: &neg},
	}
	for i, p := range cases {
		if _, err := svc.Save(ctx, p); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}

	_, err := svc.Save(ctx, domain.Product{Key: "k", Title: "Cable", Price: 1, Currency: "USD", Category: "electronics", SellerID: "s"})
	var below *pricing.BelowMinimumError
	if !errors.As(err, &below) {
		t.Fatalf("expected BelowMinimumError, got %v", err)
	}
	if repo.upserts != 0 {
		t.Fatalf("rejected products must not be stored")
	}
}

func TestGet_RequiresID(t *testing.T) {
	svc := New(&stubRepo{})
	if _, err := svc.Get(context.Background(), " "); err == nil {
		t.Fatalf("expected error for blank id")
	}
	if _, err := svc.Get(context.Background(), "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_PassesFilter(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	_, _ = svc.List(context.Background(), productrepo.ListFilter{Query: "mask", Limit: 5})
	if repo.lastFilter.Query != "mask" || repo.lastFilter.Limit != 5 {
		t.Fatalf("filter not passed through: %+v", repo.lastFilter)
	}
}
