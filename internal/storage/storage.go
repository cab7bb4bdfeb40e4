// Package storage persists small JSON blobs per owner under fixed keys. It backs
// the cart, wishlist and saved-search stores.
package storage

import (
	"context"
	"errors"
	"strings"
)

// Fixed blob keys.
const (
	KeyCart          = "cart-storage"
	KeyWishlist      = "wishlist-storage"
	KeySavedSearches = "saved-searches"
)

// Store reads and writes opaque blobs. Get returns domain.ErrNotFound when the
// owner has nothing stored under key.
type Store interface {
	Get(ctx context.Context, owner, key string) ([]byte, error)
	Put(ctx context.Context, owner, key string, value []byte) error
	Delete(ctx context.Context, owner, key string) error
}

var errEmptyOwner = errors.New("owner and key required")

func checkArgs(owner, key string) error {
	if strings.TrimSpace(owner) == "" || strings.TrimSpace(key) == "" {
		return errEmptyOwner
	}
	return nil
}
