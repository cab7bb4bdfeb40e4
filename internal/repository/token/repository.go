package token

import (
	"context"
	"time"
)

// Token binds an opaque bearer token to a shopper session.
type Token struct {
	Token     string
	SessionID string
	UserID    *string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

type Repository interface {
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
	// DeleteExpired removes every token that expired before now and returns how
	// many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
