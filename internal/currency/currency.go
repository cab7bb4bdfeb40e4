// Package currency holds the static exchange-rate table and the pure conversion,
// formatting and detection functions built on it.
package currency

import (
	"fmt"
	"strings"

	"marketplace-storefront/internal/domain"

	xcurrency "golang.org/x/text/currency"
)

// Code is an ISO 4217 currency code.
type Code string

const (
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	TZS Code = "TZS"
	KES Code = "KES"
	UGX Code = "UGX"
	RWF Code = "RWF"
)

// Base is the reference currency every conversion routes through.
const Base = USD

// Info describes a supported currency. Rate is units per one Base unit.
// FractionDigits is the display precision and is set per currency.
type Info struct {
	Code           Code    `json:"code"`
	Name           string  `json:"name"`
	Symbol         string  `json:"symbol"`
	Locale         string  `json:"locale"`
	FractionDigits int     `json:"fractionDigits"`
	Rate           float64 `json:"rate"`
}

// ExchangeRateTable maps each supported currency to its multiplier against Base.
type ExchangeRateTable map[Code]float64

var table = []Info{
	{Code: USD, Name: "US Dollar", Symbol: "$", Locale: "en-US", FractionDigits: 2, Rate: 1.0},
	{Code: EUR, Name: "Euro", Symbol: "€", Locale: "en-IE", FractionDigits: 2, Rate: 0.92},
	{Code: GBP, Name: "British Pound", Symbol: "£", Locale: "en-GB", FractionDigits: 2, Rate: 0.79},
	{Code: TZS, Name: "Tanzanian Shilling", Symbol: "TSh", Locale: "sw-TZ", FractionDigits: 0, Rate: 2500},
	{Code: KES, Name: "Kenyan Shilling", Symbol: "KSh", Locale: "sw-KE", FractionDigits: 0, Rate: 129},
	{Code: UGX, Name: "Ugandan Shilling", Symbol: "USh", Locale: "en-UG", FractionDigits: 0, Rate: 3700},
	{Code: RWF, Name: "Rwandan Franc", Symbol: "FRw", Locale: "rw-RW", FractionDigits: 0, Rate: 1300},
}

var byCode map[Code]Info

func init() {
	byCode = make(map[Code]Info, len(table))
	for _, info := range table {
		if _, err := xcurrency.ParseISO(string(info.Code)); err != nil {
			panic(fmt.Sprintf("currency table: %s is not an ISO 4217 code: %v", info.Code, err))
		}
		if info.Rate <= 0 {
			panic(fmt.Sprintf("currency table: %s has non-positive rate", info.Code))
		}
		if _, dup := byCode[info.Code]; dup {
			panic(fmt.Sprintf("currency table: duplicate entry for %s", info.Code))
		}
		byCode[info.Code] = info
	}
	if byCode[Base].Rate != 1 {
		panic("currency table: base currency must have rate 1")
	}
}

// Supported lists the currency table in display order.
func Supported() []Info {
	out := make([]Info, len(table))
	copy(out, table)
	return out
}

// Lookup finds a currency by code, ignoring case and surrounding space.
func Lookup(code string) (Info, bool) {
	info, ok := byCode[Code(strings.ToUpper(strings.TrimSpace(code)))]
	return info, ok
}

// IsSupported reports whether code is in the rate table.
func IsSupported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Normalize resolves an item currency. Empty means Base. Unknown codes also resolve
// to Base and come back with a ConfigurationError for the caller to log.
func Normalize(code string) (Code, error) {
	if strings.TrimSpace(code) == "" {
		return Base, nil
	}
	info, ok := Lookup(code)
	if !ok {
		return Base, &domain.ConfigurationError{Kind: "currency", Value: code}
	}
	return info.Code, nil
}

// Rates returns a copy of the static rate table.
func Rates() ExchangeRateTable {
	out := make(ExchangeRateTable, len(table))
	for _, info := range table {
		out[info.Code] = info.Rate
	}
	return out
}

func infoOrBase(code Code) Info {
	if info, ok := Lookup(string(code)); ok {
		return info
	}
	return byCode[Base]
}
