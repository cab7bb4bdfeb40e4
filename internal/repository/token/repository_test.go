package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-storefront/internal/domain"
)

func TestMemoryRepo(t *testing.T) {
	exerciseRepo(t, NewMemory())
}

func TestMemoryRepo_DeleteExpired(t *testing.T) {
	exerciseSweep(t, NewMemory())
}

func exerciseRepo(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()
	user := "user-1"
	tok := Token{Token: "abc", SessionID: "s-1", UserID: &user, ExpiresAt: time.Now().Add(time.Hour)}

	if err := repo.Create(ctx, tok); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, tok); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	got, err := repo.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SessionID != "s-1" || got.UserID == nil || *got.UserID != user || got.CreatedAt.IsZero() {
		t.Fatalf("unexpected token %+v", got)
	}
	if err := repo.Delete(ctx, "abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "abc"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "abc"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func exerciseSweep(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, exp := range []time.Time{now.Add(-time.Minute), now.Add(-time.Hour), now.Add(time.Hour)} {
		tok := Token{Token: string(rune('a' + i)), SessionID: "s", ExpiresAt: exp}
		if err := repo.Create(ctx, tok); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	n, err := repo.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	if _, err := repo.Get(ctx, "c"); err != nil {
		t.Fatalf("live token removed: %v", err)
	}
}
