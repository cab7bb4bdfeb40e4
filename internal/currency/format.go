package currency

import (
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatPrice renders amount with the currency's locale and symbol, using the
// currency's FractionDigits. Unknown codes format as Base.
func FormatPrice(amount float64, code Code) string {
	info := infoOrBase(code)
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		// Not a displayable amount; show zero rather than "NaN".
		amount = 0
	}
	if s, ok := formatLocale(amount, info); ok {
		return s
	}
	return formatManual(amount, info)
}

// FormatPriceWithConversion converts from the product currency to the shopper's
// currency before formatting.
func FormatPriceWithConversion(amount float64, productCurrency, userCurrency Code) string {
	if productCurrency == userCurrency {
		return FormatPrice(amount, userCurrency)
	}
	return FormatPrice(Convert(amount, productCurrency, userCurrency), userCurrency)
}

// Round rounds amount half away from zero to the currency's display precision.
func Round(amount float64, code Code) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return amount
	}
	info := infoOrBase(code)
	return decimal.NewFromFloat(amount).Round(int32(info.FractionDigits)).InexactFloat64()
}

func formatLocale(amount float64, info Info) (string, bool) {
	if info.Locale == "" {
		return "", false
	}
	tag, err := language.Parse(info.Locale)
	if err != nil {
		return "", false
	}
	rounded := decimal.NewFromFloat(amount).Round(int32(info.FractionDigits)).InexactFloat64()
	p := message.NewPrinter(tag)
	digits := p.Sprintf("%v", number.Decimal(rounded, number.Scale(info.FractionDigits)))
	return withSymbol(info.Symbol, digits), true
}

func formatManual(amount float64, info Info) string {
	fixed := decimal.NewFromFloat(amount).StringFixed(int32(info.FractionDigits))
	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}
	grouped := groupThousands(intPart)
	if fracPart != "" {
		grouped += "." + fracPart
	}
	if negative && strings.Trim(grouped, "0.,") != "" {
		grouped = "-" + grouped
	}
	return withSymbol(info.Symbol, grouped)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// withSymbol puts the sign before the symbol and separates letter symbols
// ("TSh 2,500") from the digits.
func withSymbol(symbol, digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign = "-"
		digits = strings.TrimPrefix(digits, "-")
	}
	sep := ""
	if symbol != "" && unicode.IsLetter([]rune(symbol)[len([]rune(symbol))-1]) {
		sep = " "
	}
	return sign + symbol + sep + digits
}
