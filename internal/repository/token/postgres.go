package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/logging"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) Create(ctx context.Context, t Token) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO session_tokens (token, session_id, user_id, expires_at)
VALUES ($1, $2::uuid, $3, $4)`,
		t.Token, t.SessionID, t.UserID, t.ExpiresAt)
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		return domain.ErrAlreadyExists
	default:
		return fmt.Errorf("insert session token: %w", err)
	}
}

func (r *postgresRepo) Get(ctx context.Context, token string) (*Token, error) {
	row := r.pool.QueryRow(ctx, `
SELECT token, session_id::text, user_id, expires_at, created_at
FROM session_tokens
WHERE token = $1`, token)
	t, err := scanToken(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session token: %w", err)
	}
	return t, nil
}

func (r *postgresRepo) Delete(ctx context.Context, token string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM session_tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete session token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM session_tokens WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("sweep session tokens: %w", err)
	}
	n := int(tag.RowsAffected())
	if n > 0 {
		r.logger.Debug("expired session tokens removed", zap.Int("count", n))
	}
	return n, nil
}

func scanToken(row pgx.Row) (*Token, error) {
	var t Token
	if err := row.Scan(&t.Token, &t.SessionID, &t.UserID, &t.ExpiresAt, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
