package storage

import (
	"context"
	"encoding/json"
	"errors"

	"marketplace-storefront/internal/domain"
)

// LoadJSON decodes the blob under key into dst. A missing blob leaves dst
// untouched and returns nil; read and decode failures come back as
// *domain.PersistenceError.
func LoadJSON(ctx context.Context, s Store, owner, key string, dst interface{}) error {
	raw, err := s.Get(ctx, owner, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return &domain.PersistenceError{Op: "load", Key: key, Err: err}
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &domain.PersistenceError{Op: "decode", Key: key, Err: err}
	}
	return nil
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(ctx context.Context, s Store, owner, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return &domain.PersistenceError{Op: "encode", Key: key, Err: err}
	}
	if err := s.Put(ctx, owner, key, raw); err != nil {
		return &domain.PersistenceError{Op: "save", Key: key, Err: err}
	}
	return nil
}
