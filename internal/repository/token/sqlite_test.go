package token

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteRepo(t *testing.T) {
	repo, err := NewSQLite(context.Background(), openSQLite(t), nil)
	if err != nil {
		t.Fatalf("new sqlite repo: %v", err)
	}
	exerciseRepo(t, repo)
}

func TestSQLiteRepo_DeleteExpired(t *testing.T) {
	repo, err := NewSQLite(context.Background(), openSQLite(t), nil)
	if err != nil {
		t.Fatalf("new sqlite repo: %v", err)
	}
	exerciseSweep(t, repo)
}

func TestSQLiteRepo_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	first, err := NewSQLite(ctx, db, nil)
	if err != nil {
		t.Fatalf("new sqlite repo: %v", err)
	}
	exp := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	if err := first.Create(ctx, Token{Token: "keep", SessionID: "s-9", ExpiresAt: exp}); err != nil {
		t.Fatalf("create: %v", err)
	}

	second, err := NewSQLite(ctx, db, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := second.Get(ctx, "keep")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.UserID != nil || !got.ExpiresAt.Equal(exp) || got.SessionID != "s-9" {
		t.Fatalf("unexpected token %+v", got)
	}
}
