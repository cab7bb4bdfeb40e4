package pricing

import (
	"errors"
	"testing"

	"marketplace-storefront/internal/currency"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimumPrice(t *testing.T) {
	assert.InDelta(t, 5.0, MinimumPrice("Electronics", currency.USD), 1e-9)
	assert.InDelta(t, 0.5, MinimumPrice("unheard-of", currency.USD), 1e-9)
	assert.InDelta(t, 12500.0, MinimumPrice("electronics", currency.TZS), 1e-9)
}

func TestValidateMinimumPrice(t *testing.T) {
	require.NoError(t, ValidateMinimumPrice(5, currency.USD, "electronics"))
	require.NoError(t, ValidateMinimumPrice(12500, currency.TZS, "electronics"))

	err := ValidateMinimumPrice(4.99, currency.USD, "electronics")
	var below *BelowMinimumError
	require.True(t, errors.As(err, &below))
	assert.Equal(t, "electronics", below.Category)
	assert.InDelta(t, 5.0, below.Minimum, 1e-9)

	err = ValidateMinimumPrice(0.1, currency.Code("XXX"), "")
	require.True(t, errors.As(err, &below))
	assert.Equal(t, DefaultCategory, below.Category)
	assert.Equal(t, currency.Base, below.Currency)
}

func TestQuote_FreeShippingOverThreshold(t *testing.T) {
	q := Quote(QuoteInput{Subtotal: 150, Country: "Tanzania", DisplayCurrency: currency.USD})
	assert.Equal(t, 0.0, q.Base.Shipping)
	assert.InDelta(t, 27.0, q.Base.Tax, 1e-9)
	assert.InDelta(t, 177.0, q.Base.Total, 1e-9)
	assert.Equal(t, "Tanzania", q.Country)
}

func TestQuote_DisplayRounding(t *testing.T) {
	q := Quote(QuoteInput{Subtotal: 10.333, Country: "Kenya", SellerCountry: "Kenya", DisplayCurrency: currency.KES})
	assert.Equal(t, 0.0, q.Base.Shipping)
	assert.Equal(t, currency.KES, q.DisplayCurrency)
	assert.Equal(t, currency.Round(10.333*129, currency.KES), q.Display.Subtotal)
	assert.Equal(t, float64(int64(q.Display.Total)), q.Display.Total)
	assert.Contains(t, q.Formatted["total"], "KSh")
}

func TestQuote_UnknownCountryAndCurrency(t *testing.T) {
	q := Quote(QuoteInput{Subtotal: 100, Country: "UnknownCountry", DisplayCurrency: "ZZZ"})
	assert.InDelta(t, 8.0, q.Base.Tax, 1e-9)
	assert.Equal(t, 15.0, q.Base.Shipping)
	assert.Equal(t, currency.Base, q.DisplayCurrency)
}

func TestQuote_Digital(t *testing.T) {
	q := Quote(QuoteInput{Subtotal: 20, Country: "Uganda", IsDigital: true})
	assert.Equal(t, Amounts{Subtotal: 20, Total: 20}, q.Base)
}
