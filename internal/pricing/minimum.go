// Package pricing enforces per-category minimum prices and assembles checkout
// quotes from the currency and shipping tables.
package pricing

import (
	"fmt"
	"strings"

	"marketplace-storefront/internal/currency"
)

// DefaultCategory is used for categories without their own minimum.
const DefaultCategory = "default"

// minimums are in base-currency units.
var minimums = map[string]float64{
	DefaultCategory: 0.50,
	"electronics":   5.00,
	"fashion":       2.00,
	"home":          2.00,
	"beauty":        1.00,
	"books":         1.00,
	"food":          0.40,
	"art":           3.00,
	"digital":       0.99,
}

// BelowMinimumError is returned when a listing price is under its category minimum.
type BelowMinimumError struct {
	Category string
	Minimum  float64
	Currency currency.Code
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("price below minimum for %s: %s", e.Category, currency.FormatPrice(e.Minimum, e.Currency))
}

// Categories returns the configured minimums in base currency.
func Categories() map[string]float64 {
	out := make(map[string]float64, len(minimums))
	for k, v := range minimums {
		out[k] = v
	}
	return out
}

func categoryKey(category string) string {
	key := strings.ToLower(strings.TrimSpace(category))
	if _, ok := minimums[key]; ok {
		return key
	}
	return DefaultCategory
}

// MinimumPrice returns the category minimum expressed in code.
func MinimumPrice(category string, code currency.Code) float64 {
	return currency.Convert(minimums[categoryKey(category)], currency.Base, code)
}

// ValidateMinimumPrice checks price (in code) against the category minimum.
func ValidateMinimumPrice(price float64, code currency.Code, category string) error {
	if _, ok := currency.Lookup(string(code)); !ok {
		code = currency.Base
	}
	minimum := MinimumPrice(category, code)
	if price < minimum {
		return &BelowMinimumError{Category: categoryKey(category), Minimum: minimum, Currency: code}
	}
	return nil
}
