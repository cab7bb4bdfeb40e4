package cart

import (
	"context"
	"errors"
	"math"
	"testing"

	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/storage"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type failingStorage struct {
	getErr  error
	putErr  error
	puts    int
	lastKey string
}

func (f *failingStorage) Get(_ context.Context, _, _ string) ([]byte, error) {
	return nil, f.getErr
}

func (f *failingStorage) Put(_ context.Context, _, key string, _ []byte) error {
	f.puts++
	f.lastKey = key
	return f.putErr
}

func (f *failingStorage) Delete(_ context.Context, _, _ string) error {
	return f.putErr
}

func intPtr(v int) *int { return &v }

func newCart(t *testing.T) (*Service, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	svc := New("session-1", mem, nil)
	svc.Load(context.Background())
	return svc, mem
}

func TestAddToCart_NewLineOpensCart(t *testing.T) {
	svc, _ := newCart(t)
	ctx := context.Background()

	notice := svc.AddToCart(ctx, domain.CartLineItem{ID: "p1", Title: "Kitenge", Price: 12}, 0)
	if notice != domain.NoticeAddedToCart {
		t.Fatalf("expected added notice, got %q", notice)
	}
	items := svc.Items()
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("expected one line with quantity 1, got %+v", items)
	}
	if items[0].Currency != "USD" {
		t.Fatalf("expected currency defaulted to USD, got %q", items[0].Currency)
	}
	if !svc.IsOpen() {
		t.Fatalf("expected cart to open on add")
	}
}

func TestAddToCart_NewLineNotClampedOnInsert(t *testing.T) {
	svc, _ := newCart(t)
	svc.AddToCart(context.Background(), domain.CartLineItem{ID: "p1", Price: 1, StockQuantity: intPtr(2)}, 5)
	if got := svc.Items()[0].Quantity; got != 5 {
		t.Fatalf("expected quantity 5 on insert, got %d", got)
	}
}

func TestAddToCart_ClampsToStock(t *testing.T) {
	svc, _ := newCart(t)
	ctx := context.Background()
	item := domain.CartLineItem{ID: "p1", Price: 10, Currency: "USD", StockQuantity: intPtr(5)}

	svc.AddToCart(ctx, item, 4)
	notice := svc.AddToCart(ctx, item, 2)
	if notice == domain.NoticeMaximumReached {
		t.Fatalf("did not expect maximum notice when quantity grew")
	}
	if got := svc.Items()[0].Quantity; got != 5 {
		t.Fatalf("expected clamp to 5, got %d", got)
	}

	notice = svc.AddToCart(ctx, item, 2)
	if notice != domain.NoticeMaximumReached {
		t.Fatalf("expected maximum notice, got %q", notice)
	}
	if got := svc.Items()[0].Quantity; got != 5 {
		t.Fatalf("expected quantity to stay 5, got %d", got)
	}
}

func TestAddToCart_NoCeilingMerges(t *testing.T) {
	svc, _ := newCart(t)
	ctx := context.Background()
	svc.AddToCart(ctx, domain.CartLineItem{ID: "p1", Price: 3}, 2)
	svc.AddToCart(ctx, domain.CartLineItem{ID: "p1", Price: 3}, 3)
	if items := svc.Items(); len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("expected merged line with 5, got %+v", items)
	}
}

func TestUpdateQuantity(t *testing.T) {
	svc, _ := newCart(t)
	ctx := context.Background()
	svc.AddToCart(ctx, domain.CartLineItem{ID: "p1", Price: 10, StockQuantity: intPtr(3)}, 1)

	svc.UpdateQuantity(ctx, "p1", 10)
	if got := svc.Items()[0].Quantity; got != 3 {
		t.Fatalf("expected quantity capped at 3, got %d", got)
	}
	svc.UpdateQuantity(ctx, "p1", 2)
	if got := svc.Items()[0].Quantity; got != 2 {
		t.Fatalf("expected quantity 2, got %d", got)
	}
	svc.UpdateQuantity(ctx, "missing", 2)
	if svc.TotalItems() != 2 {
		t.Fatalf("expected missing id to be a no-op")
	}
}

func TestUpdateQuantity_BelowOneRemoves(t *testing.T) {
	for _, q := range []int{0, -3} {
		svc, _ := newCart(t)
		ctx := context.Background()
		svc.AddToCart(ctx, domain.CartLineItem{ID: "p1", Price: 10}, 2)
		svc.AddToCart(ctx, domain.CartLineItem{ID: "p2", Price: 5}, 1)

		notice := svc.UpdateQuantity(ctx, "p1", q)
		if notice != domain.NoticeRemovedFromCart {
			t.Fatalf("quantity %d: expected removal notice, got %q", q, notice)
		}
		items := svc.Items()
		if len(items) != 1 || items[0].ID != "p2" {
			t.Fatalf("quantity %d: expected only p2 left, got %+v", q, items)
		}
	}
}

func TestRemoveAndClear(t *testing.T) {
	svc, mem := newCart(t)
	ctx := context.Background()
	svc.AddToCart(ctx, domain.CartLineItem{ID: "p1", Price: 10}, 1)
	svc.AddToCart(ctx, domain.CartLineItem{ID: "p2", Price: 10}, 1)

	if n := svc.RemoveFromCart(ctx, "nope"); n != domain.NoticeNone {
		t.Fatalf("expected no notice for missing id, got %q", n)
	}
	svc.RemoveFromCart(ctx, "p1")
	if svc.TotalItems() != 1 {
		t.Fatalf("expected 1 item after remove")
	}
	svc.ClearCart(ctx)
	if svc.TotalItems() != 0 || len(svc.Items()) != 0 {
		t.Fatalf("expected empty cart after clear")
	}
	raw, err := mem.Get(ctx, "session-1", storage.KeyCart)
	if err != nil || string(raw) != "[]" {
		t.Fatalf("expected persisted empty array, got %q err=%v", raw, err)
	}
}

func TestTotals_SkipMalformedLine(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mem := storage.NewMemory()
	ctx := context.Background()
	blob := `[{"id":"a","price":10,"quantity":2,"currency":"USD"},{"id":"b","price":"NaN","quantity":1}]`
	if err := mem.Put(ctx, "s", storage.KeyCart, []byte(blob)); err != nil {
		t.Fatal(err)
	}
	svc := New("s", mem, zap.New(core))
	svc.Load(ctx)

	if got := svc.TotalPrice(); got != 20 {
		t.Fatalf("expected total 20, got %v", got)
	}
	if got := svc.TotalItems(); got != 3 {
		t.Fatalf("expected 3 items, got %d", got)
	}
	if logs.FilterMessage("cart line excluded from total").Len() == 0 {
		t.Fatalf("expected excluded line to be logged")
	}
	if len(svc.Items()) != 2 {
		t.Fatalf("malformed line must stay in the cart")
	}
}

func TestTotalPrice_ConvertsToBase(t *testing.T) {
	svc, _ := newCart(t)
	ctx := context.Background()
	svc.AddToCart(ctx, domain.CartLineItem{ID: "tz", Price: 25000, Currency: "TZS"}, 2)
	svc.AddToCart(ctx, domain.CartLineItem{ID: "us", Price: 5, Currency: "usd"}, 1)
	svc.AddToCart(ctx, domain.CartLineItem{ID: "neg", Price: -4}, 1)
	if got := svc.TotalPrice(); math.Abs(got-25) > 1e-9 {
		t.Fatalf("expected 25, got %v", got)
	}
}

func TestPersistence_RoundTrip(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()
	first := New("s", mem, nil)
	first.Load(ctx)
	first.AddToCart(ctx, domain.CartLineItem{ID: "a", Title: "Basket", Price: 19.99, Currency: "USD", Image: "a.jpg", StockQuantity: intPtr(4), SellerID: "seller-1"}, 3)
	first.AddToCart(ctx, domain.CartLineItem{ID: "b", Price: 3900, Currency: "KES"}, 1)
	first.AddToCart(ctx, domain.CartLineItem{ID: "c", Price: math.NaN()}, 1)

	second := New("s", mem, nil)
	second.Load(ctx)
	if first.TotalPrice() != second.TotalPrice() {
		t.Fatalf("total price changed: %v vs %v", first.TotalPrice(), second.TotalPrice())
	}
	if first.TotalItems() != second.TotalItems() {
		t.Fatalf("total items changed: %d vs %d", first.TotalItems(), second.TotalItems())
	}
	got := second.Items()[0]
	if got.Title != "Basket" || got.Image != "a.jpg" || got.SellerID != "seller-1" || got.StockQuantity == nil || *got.StockQuantity != 4 {
		t.Fatalf("line fields not preserved: %+v", got)
	}
}

func TestLoad_FailureGivesEmptyCart(t *testing.T) {
	svc := New("s", &failingStorage{getErr: errors.New("unavailable")}, nil)
	svc.Load(context.Background())
	if svc.TotalItems() != 0 {
		t.Fatalf("expected empty cart")
	}

	mem := storage.NewMemory()
	_ = mem.Put(context.Background(), "s", storage.KeyCart, []byte("garbage"))
	svc = New("s", mem, nil)
	svc.Load(context.Background())
	if len(svc.Items()) != 0 {
		t.Fatalf("expected empty cart on decode failure")
	}
}

func TestPersistFailureKeepsState(t *testing.T) {
	store := &failingStorage{putErr: errors.New("quota exceeded")}
	svc := New("s", store, nil)
	svc.AddToCart(context.Background(), domain.CartLineItem{ID: "p1", Price: 2}, 2)
	if svc.TotalItems() != 2 {
		t.Fatalf("expected in-memory state kept")
	}
	if store.puts != 1 || store.lastKey != storage.KeyCart {
		t.Fatalf("expected one write to %s, got %d to %q", storage.KeyCart, store.puts, store.lastKey)
	}
}

func TestSummary(t *testing.T) {
	svc, _ := newCart(t)
	svc.AddToCart(context.Background(), domain.CartLineItem{ID: "p1", Price: 2.5}, 2)
	svc.SetOpen(false)
	sum := svc.Summary()
	if sum.TotalItems != 2 || sum.TotalPrice != 5 || sum.Open || len(sum.Items) != 1 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}
