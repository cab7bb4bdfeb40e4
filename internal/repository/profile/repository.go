package profile

import (
	"context"

	"marketplace-storefront/internal/domain"
)

// Repository reads and writes user profiles. It satisfies preference.Profiles.
type Repository interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	GetCurrencyPreference(ctx context.Context, userID string) (string, error)
	SetCurrencyPreference(ctx context.Context, userID, code string) error
}
