// Package shipping holds the per-country shipping and tax table and the checkout
// calculations built on it. Amounts are in base-currency units.
package shipping

// CountryConfig is the shipping and tax configuration for one destination.
type CountryConfig struct {
	Code                  string  `json:"code"`
	Name                  string  `json:"name"`
	BaseRate              float64 `json:"baseRate"`
	FreeShippingThreshold float64 `json:"freeShippingThreshold"`
	TaxRate               float64 `json:"taxRate"`
	TaxExempt             bool    `json:"taxExempt"`
	Region                string  `json:"region,omitempty"`
}

const (
	// DefaultCountryCode is used by LookupCountry when nothing matches.
	DefaultCountryCode = "TZ"
	// FallbackShippingRate applies when a destination is not configured.
	FallbackShippingRate = 15.0
	// FallbackTaxRate applies when a destination is not configured.
	FallbackTaxRate = 0.08
)

var countries = []CountryConfig{
	{Code: "TZ", Name: "Tanzania", BaseRate: 5, FreeShippingThreshold: 100, TaxRate: 0.18, Region: "East Africa"},
	{Code: "KE", Name: "Kenya", BaseRate: 10, FreeShippingThreshold: 150, TaxRate: 0.16, Region: "East Africa"},
	{Code: "UG", Name: "Uganda", BaseRate: 10, FreeShippingThreshold: 150, TaxRate: 0.18, Region: "East Africa"},
	{Code: "RW", Name: "Rwanda", BaseRate: 12, FreeShippingThreshold: 150, TaxRate: 0.18, Region: "East Africa"},
	{Code: "BI", Name: "Burundi", BaseRate: 12, FreeShippingThreshold: 150, TaxRate: 0.18, Region: "East Africa"},
	{Code: "ZA", Name: "South Africa", BaseRate: 20, FreeShippingThreshold: 200, TaxRate: 0.15, Region: "Southern Africa"},
	{Code: "NG", Name: "Nigeria", BaseRate: 20, FreeShippingThreshold: 200, TaxRate: 0.075, Region: "West Africa"},
	{Code: "AE", Name: "United Arab Emirates", BaseRate: 25, FreeShippingThreshold: 250, TaxRate: 0.05, Region: "Middle East"},
	{Code: "GB", Name: "United Kingdom", BaseRate: 30, FreeShippingThreshold: 300, TaxRate: 0.20, Region: "Europe"},
	{Code: "DE", Name: "Germany", BaseRate: 30, FreeShippingThreshold: 300, TaxRate: 0.19, Region: "Europe"},
	{Code: "US", Name: "United States", BaseRate: 35, FreeShippingThreshold: 300, TaxRate: 0.08, Region: "North America"},
	{Code: "HK", Name: "Hong Kong", BaseRate: 30, FreeShippingThreshold: 300, TaxRate: 0, TaxExempt: true, Region: "Asia"},
}

// Countries lists the configured destinations.
func Countries() []CountryConfig {
	out := make([]CountryConfig, len(countries))
	copy(out, countries)
	return out
}
