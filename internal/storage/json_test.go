package storage

import (
	"context"
	"errors"
	"testing"

	"marketplace-storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{ err error }

func (b brokenStore) Get(context.Context, string, string) ([]byte, error) { return nil, b.err }
func (b brokenStore) Put(context.Context, string, string, []byte) error { return b.err }
func (b brokenStore) Delete(context.Context, string, string) error { return b.err }

func TestLoadJSON_Missing(t *testing.T) {
	var v []string
	require.NoError(t, LoadJSON(context.Background(), NewMemory(), "o", KeyCart, &v))
	assert.Nil(t, v)
}

func TestSaveLoadJSON(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, SaveJSON(ctx, m, "o", KeyWishlist, []string{"a", "b"}))
	var v []string
	require.NoError(t, LoadJSON(ctx, m, "o", KeyWishlist, &v))
	assert.Equal(t, []string{"a", "b"}, v)
}

func TestLoadJSON_Corrupt(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Put(ctx, "o", KeyCart, []byte("{not json")))
	var v []string
	err := LoadJSON(ctx, m, "o", KeyCart, &v)
	var perr *domain.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "decode", perr.Op)
}

func TestPersistenceErrors(t *testing.T) {
	boom := errors.New("disk full")
	var v []string
	err := LoadJSON(context.Background(), brokenStore{boom}, "o", KeyCart, &v)
	assert.True(t, errors.Is(err, boom))

	err = SaveJSON(context.Background(), brokenStore{boom}, "o", KeyCart, v)
	var perr *domain.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "save", perr.Op)
	assert.Equal(t, KeyCart, perr.Key)
}
