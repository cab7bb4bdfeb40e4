package pricing

import (
	"marketplace-storefront/internal/currency"
	"marketplace-storefront/internal/shipping"

	"github.com/shopspring/decimal"
)

// QuoteInput describes a checkout. Subtotal is in base currency.
type QuoteInput struct {
	Subtotal        float64
	Country         string
	SellerCountry   string
	IsDigital       bool
	DisplayCurrency currency.Code
}

// Amounts is one set of checkout figures in a single currency.
type Amounts struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// QuoteResult holds unrounded base figures and rounded display figures.
type QuoteResult struct {
	Country         string            `json:"country"`
	Base            Amounts           `json:"base"`
	DisplayCurrency currency.Code     `json:"displayCurrency"`
	Display         Amounts           `json:"display"`
	Formatted       map[string]string `json:"formatted"`
}

// Quote computes shipping, tax and total for a checkout.
func Quote(in QuoteInput) QuoteResult {
	display := in.DisplayCurrency
	if _, ok := currency.Lookup(string(display)); !ok {
		display = currency.Base
	}
	subtotal := in.Subtotal
	if subtotal < 0 {
		subtotal = 0
	}
	ship := shipping.CalculateShipping(in.Country, subtotal, in.IsDigital, in.SellerCountry)
	tax := shipping.CalculateTax(in.Country, subtotal, in.IsDigital, in.SellerCountry)
	total := decimal.NewFromFloat(subtotal).
		Add(decimal.NewFromFloat(ship)).
		Add(decimal.NewFromFloat(tax)).
		InexactFloat64()

	base := Amounts{Subtotal: subtotal, Shipping: ship, Tax: tax, Total: total}
	shown := Amounts{
		Subtotal: toDisplay(subtotal, display),
		Shipping: toDisplay(ship, display),
		Tax:      toDisplay(tax, display),
		Total:    toDisplay(total, display),
	}
	return QuoteResult{
		Country:         shipping.LookupCountry(in.Country).Name,
		Base:            base,
		DisplayCurrency: display,
		Display:         shown,
		Formatted: map[string]string{
			"subtotal": currency.FormatPrice(shown.Subtotal, display),
			"shipping": currency.FormatPrice(shown.Shipping, display),
			"tax":      currency.FormatPrice(shown.Tax, display),
			"total":    currency.FormatPrice(shown.Total, display),
		},
	}
}

func toDisplay(amount float64, code currency.Code) float64 {
	return currency.Round(currency.Convert(amount, currency.Base, code), code)
}
