package product

import (
	"context"
	"errors"
	"os"
	"testing"

	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/migrate"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func intPtr(v int) *int { return &v }

func sampleProducts() []domain.Product {
	return []domain.Product{
		{Key: "kikoy", Title: "Kikoy beach towel", Price: 25000, Currency: "TZS", Category: "fashion", SellerID: "s1", SellerCountry: "Tanzania", StockQuantity: intPtr(4)},
		{Key: "soapstone", Title: "Soapstone bowl", Description: "carved in Kisii", Price: 1290, Currency: "KES", Category: "home", SellerID: "s2", SellerCountry: "Kenya"},
		{Key: "ebook", Title: "Swahili phrasebook", Price: 4.5, Currency: "USD", Category: "books", SellerID: "s3", IsDigital: true},
	}
}

func exerciseRepo(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()
	ids := map[string]string{}
	for _, p := range sampleProducts() {
		got, err := repo.Upsert(ctx, p)
		if err != nil {
			t.Fatalf("upsert %s: %v", p.Key, err)
		}
		if got.ID == "" {
			t.Fatalf("expected id for %s", p.Key)
		}
		ids[p.Key] = got.ID
	}

	again, err := repo.Upsert(ctx, domain.Product{Key: "kikoy", Title: "Kikoy towel", Price: 30000, Currency: "TZS", Category: "fashion", SellerID: "s1", StockQuantity: intPtr(2)})
	if err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	if again.ID != ids["kikoy"] {
		t.Fatalf("expected stable id on upsert")
	}

	got, err := repo.GetByID(ctx, ids["kikoy"])
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Kikoy towel" || got.StockQuantity == nil || *got.StockQuantity != 2 {
		t.Fatalf("unexpected product %+v", got)
	}
	if byKey, err := repo.GetByID(ctx, "soapstone"); err != nil || byKey.ID != ids["soapstone"] {
		t.Fatalf("expected lookup by key, got %+v err=%v", byKey, err)
	}

	all, err := repo.List(ctx, ListFilter{})
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 products, got %d err=%v", len(all), err)
	}
	text, _ := repo.List(ctx, ListFilter{Query: "kisii"})
	if len(text) != 1 || text[0].Key != "soapstone" {
		t.Fatalf("expected description match, got %+v", text)
	}
	cats, _ := repo.List(ctx, ListFilter{Filters: domain.SearchFilters{Categories: []string{"Books", "home"}}})
	if len(cats) != 2 {
		t.Fatalf("expected 2 category matches, got %d", len(cats))
	}
	ceiling := 5.0
	cheap, _ := repo.List(ctx, ListFilter{Filters: domain.SearchFilters{MaxPrice: &ceiling}})
	if len(cheap) != 1 || cheap[0].Key != "ebook" {
		t.Fatalf("expected only the ebook under 5 base, got %+v", cheap)
	}
	limited, _ := repo.List(ctx, ListFilter{Limit: 2})
	if len(limited) != 2 {
		t.Fatalf("expected limit applied, got %d", len(limited))
	}
}

func TestMemory(t *testing.T) {
	repo := NewMemory()
	exerciseRepo(t, repo)
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool, zap.NewNop()); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE products RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate products: %v", err)
	}
	repo := NewPostgres(pool, nil)
	exerciseRepo(t, repo)
	if _, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("connect db: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("ping db: %v", err)
	}
	return pool
}
