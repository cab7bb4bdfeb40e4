package storage

import (
	"context"
	"errors"

	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/logging"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Postgres stores blobs in the storage_blobs table created by the migrations.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) *Postgres {
	return &Postgres{pool: pool, logger: logging.OrNop(logger)}
}

func (p *Postgres) Get(ctx context.Context, owner, key string) ([]byte, error) {
	if err := checkArgs(owner, key); err != nil {
		return nil, err
	}
	const q = `SELECT value FROM storage_blobs WHERE owner_id = $1 AND key = $2`
	var value []byte
	if err := p.pool.QueryRow(ctx, q, owner, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		p.logger.Error("storage get", zap.String("owner", owner), zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return value, nil
}

func (p *Postgres) Put(ctx context.Context, owner, key string, value []byte) error {
	if err := checkArgs(owner, key); err != nil {
		return err
	}
	const q = `
INSERT INTO storage_blobs (owner_id, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (owner_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
`
	if _, err := p.pool.Exec(ctx, q, owner, key, value); err != nil {
		p.logger.Error("storage put", zap.String("owner", owner), zap.String("key", key), zap.Error(err))
		return err
	}
	p.logger.Debug("storage put", zap.String("owner", owner), zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

func (p *Postgres) Delete(ctx context.Context, owner, key string) error {
	if err := checkArgs(owner, key); err != nil {
		return err
	}
	const q = `DELETE FROM storage_blobs WHERE owner_id = $1 AND key = $2`
	if _, err := p.pool.Exec(ctx, q, owner, key); err != nil {
		p.logger.Error("storage delete", zap.String("owner", owner), zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
