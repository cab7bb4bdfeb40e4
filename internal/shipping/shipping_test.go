package shipping

import (
	"errors"
	"testing"

	"marketplace-storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCountry(t *testing.T) {
	assert.Equal(t, "KE", LookupCountry("kenya").Code)
	assert.Equal(t, "KE", LookupCountry("ke").Code)
	assert.Equal(t, "GB", LookupCountry(" United Kingdom ").Code)
	assert.Equal(t, DefaultCountryCode, LookupCountry("Atlantis").Code)
	assert.Equal(t, DefaultCountryCode, LookupCountry("").Code)
}

func TestFindCountry_Unknown(t *testing.T) {
	_, err := FindCountry("Atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownCountry))
}

func TestCountries_UniqueCodes(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Countries() {
		require.False(t, seen[c.Code], "duplicate %s", c.Code)
		seen[c.Code] = true
	}
	require.True(t, seen[DefaultCountryCode])
}

func TestCalculateShipping(t *testing.T) {
	cases := []struct {
		name    string
		country string
		total   float64
		digital bool
		seller  string
		want    float64
	}{
		{"same country below threshold", "Tanzania", 50, false, "Tanzania", 0},
		{"same country by code", "Tanzania", 50, false, "tz", 0},
		{"threshold exceeded", "Tanzania", 150, false, "", 0},
		{"threshold met exactly", "Tanzania", 100, false, "", 0},
		{"below threshold", "Tanzania", 99.99, false, "Kenya", 5},
		{"digital", "Kenya", 10, true, "", 0},
		{"unknown destination", "Atlantis", 10, false, "", FallbackShippingRate},
		{"unknown destination same seller", "Atlantis", 10, false, "atlantis", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CalculateShipping(tc.country, tc.total, tc.digital, tc.seller))
		})
	}
}

func TestCalculateTax(t *testing.T) {
	assert.InDelta(t, 8.0, CalculateTax("UnknownCountry", 100, false, ""), 1e-9)
	assert.InDelta(t, 18.0, CalculateTax("Tanzania", 100, false, ""), 1e-9)
	assert.InDelta(t, 16.0, CalculateTax("KE", 100, false, "Kenya"), 1e-9, "same-country tax exemption stays disabled")
	assert.Equal(t, 0.0, CalculateTax("Hong Kong", 100, false, ""))
	assert.Equal(t, 0.0, CalculateTax("Kenya", 100, true, ""))
}
