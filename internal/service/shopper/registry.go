// Package shopper wires the per-owner stores together and caches them.
package shopper

import (
	"context"
	"fmt"

	"marketplace-storefront/internal/currency"
	"marketplace-storefront/internal/logging"
	"marketplace-storefront/internal/service/cart"
	"marketplace-storefront/internal/service/preference"
	"marketplace-storefront/internal/service/savedsearch"
	"marketplace-storefront/internal/service/session"
	"marketplace-storefront/internal/service/wishlist"
	"marketplace-storefront/internal/storage"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Shopper is the state behind one storage owner. Every session of a signed-in
// user shares the same Shopper; an anonymous session has its own.
type Shopper struct {
	Owner    string
	Cart     *cart.Service
	Wishlist *wishlist.Service
	Searches *savedsearch.Service
	Currency *preference.Service
}

// Registry builds each Shopper once and keeps the most recently used ones.
// Evicted shoppers are rebuilt from storage on next access.
type Registry struct {
	cache    *lru.Cache
	loads    singleflight.Group
	store    storage.Store
	profiles preference.Profiles
	logger   *zap.Logger
}

func NewRegistry(size int, store storage.Store, profiles preference.Profiles, logger *zap.Logger) (*Registry, error) {
	logger = logging.OrNop(logger)
	cache, err := lru.NewWithEvict(size, func(key, _ interface{}) {
		logger.Debug("shopper evicted", zap.Any("owner", key))
	})
	if err != nil {
		return nil, fmt.Errorf("shopper cache: %w", err)
	}
	return &Registry{cache: cache, store: store, profiles: profiles, logger: logger}, nil
}

// OwnerKey is the storage owner for an identity. Signed-in users keep one cart
// across sessions.
func OwnerKey(id session.Identity) string {
	if id.UserID != "" {
		return "user:" + id.UserID
	}
	return "session:" + id.SessionID
}

// Get returns the shopper for id's owner, loading persisted state and resolving
// the display currency on first access. locale is the request's locale signal.
// Concurrent first accesses for one owner share a single load; loads for
// different owners run in parallel.
func (r *Registry) Get(ctx context.Context, id session.Identity, locale string) *Shopper {
	owner := OwnerKey(id)
	if v, ok := r.cache.Get(owner); ok {
		return v.(*Shopper)
	}
	v, _, _ := r.loads.Do(owner, func() (interface{}, error) {
		if v, ok := r.cache.Get(owner); ok {
			return v, nil
		}
		// The load is shared by every waiter, so one caller's cancellation
		// must not leave an empty snapshot cached for the rest.
		s := r.load(context.WithoutCancel(ctx), id, owner, locale)
		r.cache.Add(owner, s)
		return s, nil
	})
	return v.(*Shopper)
}

func (r *Registry) load(ctx context.Context, id session.Identity, owner, locale string) *Shopper {
	s := &Shopper{
		Owner:    owner,
		Cart:     cart.New(owner, r.store, r.logger),
		Wishlist: wishlist.New(owner, r.store, r.logger),
		Searches: savedsearch.New(owner, r.store, r.logger),
	}
	var profiles preference.Profiles
	if !id.Anonymous() {
		profiles = r.profiles
	}
	s.Currency = preference.New(profiles, id.UserID, func() currency.Code {
		return currency.DetectCurrency(locale)
	}, r.logger)

	s.Cart.Load(ctx)
	s.Wishlist.Load(ctx)
	s.Searches.Load(ctx)
	code := s.Currency.Resolve(ctx)

	r.logger.Debug("shopper loaded",
		zap.String("session_id", id.SessionID),
		zap.String("owner", owner),
		zap.String("currency", string(code)),
	)
	return s
}

// Forget drops the cached shopper of an anonymous session. A signed-in user's
// shopper stays cached because the user's other sessions still use it.
func (r *Registry) Forget(id session.Identity) {
	if !id.Anonymous() {
		return
	}
	r.cache.Remove(OwnerKey(id))
}

func (r *Registry) Len() int {
	return r.cache.Len()
}
