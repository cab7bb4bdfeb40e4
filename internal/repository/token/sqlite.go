package token

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/logging"

	"go.uber.org/zap"
)

// Times are unix nanoseconds so expiry comparisons stay numeric.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS session_tokens (
	token TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	user_id TEXT,
	expires_at INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS session_tokens_expires_at ON session_tokens (expires_at);
`

type sqliteRepo struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewSQLite keeps tokens in db, creating the table if needed.
func NewSQLite(ctx context.Context, db *sql.DB, logger *zap.Logger) (Repository, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("init session_tokens schema: %w", err)
	}
	return &sqliteRepo{db: db, logger: logging.OrNop(logger), now: time.Now}, nil
}

func (r *sqliteRepo) Create(ctx context.Context, t Token) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = r.now()
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO session_tokens (token, session_id, user_id, expires_at, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (token) DO NOTHING`,
		t.Token, t.SessionID, t.UserID, t.ExpiresAt.UnixNano(), t.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert session token: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrAlreadyExists
	}
	return nil
}

func (r *sqliteRepo) Get(ctx context.Context, token string) (*Token, error) {
	var (
		t                  Token
		expires, createdAt int64
	)
	err := r.db.QueryRowContext(ctx, `
SELECT token, session_id, user_id, expires_at, created_at
FROM session_tokens
WHERE token = ?`, token).Scan(&t.Token, &t.SessionID, &t.UserID, &expires, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session token: %w", err)
	}
	t.ExpiresAt = time.Unix(0, expires).UTC()
	t.CreatedAt = time.Unix(0, createdAt).UTC()
	return &t, nil
}

func (r *sqliteRepo) Delete(ctx context.Context, token string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM session_tokens WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("delete session token: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sqliteRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM session_tokens WHERE expires_at < ?`, now.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("sweep session tokens: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sweep session tokens: %w", err)
	}
	if n > 0 {
		r.logger.Debug("expired session tokens removed", zap.Int64("count", n))
	}
	return int(n), nil
}
