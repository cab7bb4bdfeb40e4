package savedsearch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	t := time.Date(2024, 3, 1, 9, 0, 0, 0, time.FixedZone("EAT", 3*3600))
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func TestSave_MostRecentFirstAndCapped(t *testing.T) {
	svc := New("s", storage.NewMemory(), nil)
	svc.now = fixedClock()
	ctx := context.Background()

	for i := 0; i < MaxSaved+2; i++ {
		_, err := svc.Save(ctx, "", fmt.Sprintf("query-%d", i), domain.SearchFilters{})
		require.NoError(t, err)
	}
	list := svc.List()
	require.Len(t, list, MaxSaved)
	assert.Equal(t, "query-11", list[0].Query)
	assert.Equal(t, "query-2", list[MaxSaved-1].Query)
	assert.Equal(t, time.UTC, list[0].CreatedAt.Location())
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
}

func TestSave_Validation(t *testing.T) {
	svc := New("s", storage.NewMemory(), nil)
	_, err := svc.Save(context.Background(), " ", "", domain.SearchFilters{})
	assert.Error(t, err)

	lo, hi := 50.0, 10.0
	_, err = svc.Save(context.Background(), "", "baskets", domain.SearchFilters{MinPrice: &lo, MaxPrice: &hi})
	assert.Error(t, err)

	saved, err := svc.Save(context.Background(), "", "", domain.SearchFilters{Categories: []string{"art"}})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
}

func TestDeleteAndReload(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()
	svc := New("s", mem, nil)
	a, err := svc.Save(ctx, "Baskets", "basket", domain.SearchFilters{Categories: []string{"home"}})
	require.NoError(t, err)
	b, err := svc.Save(ctx, "Art", "painting", domain.SearchFilters{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, a.ID), domain.ErrNotFound))

	reloaded := New("s", mem, nil)
	reloaded.Load(ctx)
	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, "Art", list[0].Label)
}
