package profile

import (
	"context"
	"errors"

	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/logging"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	const q = `
SELECT user_id, COALESCE(currency_preference, ''), updated_at
FROM profiles
WHERE user_id = $1
`
	var p domain.Profile
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&p.UserID, &p.CurrencyPreference, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("profile repo: get", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) GetCurrencyPreference(ctx context.Context, userID string) (string, error) {
	p, err := r.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return p.CurrencyPreference, nil
}

func (r *postgresRepo) SetCurrencyPreference(ctx context.Context, userID, code string) error {
	const q = `
INSERT INTO profiles (user_id, currency_preference, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id) DO UPDATE SET currency_preference = EXCLUDED.currency_preference, updated_at = now()
`
	if _, err := r.pool.Exec(ctx, q, userID, code); err != nil {
		r.logger.Error("profile repo: set currency", zap.String("user_id", userID), zap.String("currency", code), zap.Error(err))
		return err
	}
	r.logger.Info("profile repo: currency preference saved", zap.String("user_id", userID), zap.String("currency", code))
	return nil
}
