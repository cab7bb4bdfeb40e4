package shipping

import (
	"strings"

	"marketplace-storefront/internal/domain"
)

// FindCountry matches by name, then by code, ignoring case.
func FindCountry(nameOrCode string) (CountryConfig, error) {
	needle := strings.TrimSpace(nameOrCode)
	if needle != "" {
		for _, c := range countries {
			if strings.EqualFold(c.Name, needle) {
				return c, nil
			}
		}
		for _, c := range countries {
			if strings.EqualFold(c.Code, needle) {
				return c, nil
			}
		}
	}
	return CountryConfig{}, &domain.ConfigurationError{Kind: "country", Value: nameOrCode}
}

// LookupCountry is FindCountry falling back to the default destination.
func LookupCountry(nameOrCode string) CountryConfig {
	if c, err := FindCountry(nameOrCode); err == nil {
		return c
	}
	c, _ := FindCountry(DefaultCountryCode)
	return c
}

// SameCountry reports whether buyer and seller countries refer to one destination.
// Names and codes are interchangeable.
func SameCountry(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	if strings.EqualFold(a, b) {
		return true
	}
	ca, errA := FindCountry(a)
	cb, errB := FindCountry(b)
	return errA == nil && errB == nil && ca.Code == cb.Code
}

// CalculateShipping returns the shipping charge for an order. Digital orders and
// orders where the seller ships within their own country are free; otherwise the
// destination's free-shipping threshold applies. An empty sellerCountry means
// unknown.
func CalculateShipping(country string, orderTotal float64, isDigital bool, sellerCountry string) float64 {
	if isDigital {
		return 0
	}
	if SameCountry(country, sellerCountry) {
		return 0
	}
	cfg, err := FindCountry(country)
	if err != nil {
		return FallbackShippingRate
	}
	if orderTotal >= cfg.FreeShippingThreshold {
		return 0
	}
	return cfg.BaseRate
}

// CalculateTax returns the tax for an order. sellerCountry is accepted for the
// same-country exemption, which is currently disabled.
func CalculateTax(country string, orderTotal float64, isDigital bool, sellerCountry string) float64 {
	if isDigital {
		return 0
	}
	_ = sellerCountry
	cfg, err := FindCountry(country)
	if err != nil {
		return orderTotal * FallbackTaxRate
	}
	if cfg.TaxExempt {
		return 0
	}
	return orderTotal * cfg.TaxRate
}
