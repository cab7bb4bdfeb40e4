package profile

import (
	"context"
	"errors"
	"os"
	"testing"

	"marketplace-storefront/internal/db"
	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/migrate"

	"go.uber.org/zap"
)

func exerciseRepo(t *testing.T, repo Repository, userID string) {
	t.Helper()
	ctx := context.Background()
	if _, err := repo.GetCurrencyPreference(ctx, userID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for new user, got %v", err)
	}
	if err := repo.SetCurrencyPreference(ctx, userID, "KES"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.SetCurrencyPreference(ctx, userID, "TZS"); err != nil {
		t.Fatalf("set again: %v", err)
	}
	got, err := repo.GetCurrencyPreference(ctx, userID)
	if err != nil || got != "TZS" {
		t.Fatalf("expected TZS, got %q err=%v", got, err)
	}
	p, err := repo.Get(ctx, userID)
	if err != nil || p.UpdatedAt.IsZero() {
		t.Fatalf("expected profile with timestamp, got %+v err=%v", p, err)
	}
}

func TestMemory(t *testing.T) {
	exerciseRepo(t, NewMemory(), "user-1")
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn, zap.NewNop())
	if err != nil {
		t.Skipf("database unreachable: %v", err)
	}
	defer pool.Close()
	if err := migrate.Apply(ctx, pool, zap.NewNop()); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = 'profile-test-user'`); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	exerciseRepo(t, NewPostgres(pool, nil), "profile-test-user")
}
