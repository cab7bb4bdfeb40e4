package profile

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

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id TEXT PRIMARY KEY,
	currency_preference TEXT,
	updated_at INTEGER NOT NULL
);
`

type sqliteRepo struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewSQLite keeps profiles in db, creating the table if needed.
func NewSQLite(ctx context.Context, db *sql.DB, logger *zap.Logger) (Repository, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("init profiles schema: %w", err)
	}
	return &sqliteRepo{db: db, logger: logging.OrNop(logger), now: time.Now}, nil
}

func (r *sqliteRepo) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	var (
		p       domain.Profile
		updated int64
	)
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, COALESCE(currency_preference, ''), updated_at
FROM profiles
WHERE user_id = ?`, userID).Scan(&p.UserID, &p.CurrencyPreference, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("profile repo: get", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	p.UpdatedAt = time.Unix(0, updated).UTC()
	return &p, nil
}

func (r *sqliteRepo) GetCurrencyPreference(ctx context.Context, userID string) (string, error) {
	p, err := r.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return p.CurrencyPreference, nil
}

func (r *sqliteRepo) SetCurrencyPreference(ctx context.Context, userID, code string) error {
	const q = `
INSERT INTO profiles (user_id, currency_preference, updated_at)
VALUES (?, ?, ?)
ON CONFLICT (user_id) DO UPDATE SET currency_preference = excluded.currency_preference, updated_at = excluded.updated_at
`
	if _, err := r.db.ExecContext(ctx, q, userID, code, r.now().UnixNano()); err != nil {
		r.logger.Error("profile repo: set currency", zap.String("user_id", userID), zap.String("currency", code), zap.Error(err))
		return err
	}
	return nil
}
