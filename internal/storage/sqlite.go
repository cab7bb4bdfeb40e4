package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/logging"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS storage_blobs (
	owner_id TEXT NOT NULL,
	key TEXT NOT NULL,
	value BLOB NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (owner_id, key)
);
`

// SQLite is a file-backed Store for single-node deployments.
type SQLite struct {
	db     *sql.DB
	logger *zap.Logger
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
// ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string, logger *zap.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &SQLite{db: db, logger: logging.OrNop(logger)}, nil
}

// DB is the underlying handle, shared with the token and profile repositories.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Get(ctx context.Context, owner, key string) ([]byte, error) {
	if err := checkArgs(owner, key); err != nil {
		return nil, err
	}
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM storage_blobs WHERE owner_id = ? AND key = ?`, owner, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("storage get", zap.String("owner", owner), zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return value, nil
}

func (s *SQLite) Put(ctx context.Context, owner, key string, value []byte) error {
	if err := checkArgs(owner, key); err != nil {
		return err
	}
	const q = `
INSERT INTO storage_blobs (owner_id, key, value, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (owner_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`
	if _, err := s.db.ExecContext(ctx, q, owner, key, value); err != nil {
		s.logger.Error("storage put", zap.String("owner", owner), zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, owner, key string) error {
	if err := checkArgs(owner, key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM storage_blobs WHERE owner_id = ? AND key = ?`, owner, key); err != nil {
		s.logger.Error("storage delete", zap.String("owner", owner), zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
