package currency

import (
	"strings"

	"golang.org/x/text/language"
)

type regionCurrency struct {
	region string
	code   Code
}

// Scan order decides ties when one signal names several regions.
var regionCurrencies = []regionCurrency{
	{"TZ", TZS},
	{"KE", KES},
	{"UG", UGX},
	{"RW", RWF},
	{"GB", GBP},
	{"DE", EUR},
	{"FR", EUR},
	{"IT", EUR},
	{"ES", EUR},
	{"NL", EUR},
	{"IE", EUR},
	{"BE", EUR},
	{"AT", EUR},
	{"PT", EUR},
	{"FI", EUR},
}

var zoneCurrencies = map[string]Code{
	"africa/dar_es_salaam": TZS,
	"africa/nairobi":       KES,
	"africa/kampala":       UGX,
	"africa/kigali":        RWF,
	"europe/london":        GBP,
	"europe/berlin":        EUR,
	"europe/paris":         EUR,
	"europe/madrid":        EUR,
	"europe/rome":          EUR,
	"europe/amsterdam":     EUR,
	"europe/dublin":        EUR,
}

// DetectCurrency maps locale signals (BCP 47 tags, Accept-Language headers or
// IANA zone names) to a currency. Signals are tried in order; the first match
// wins. Base is returned when nothing matches.
func DetectCurrency(signals ...string) Code {
	for _, signal := range signals {
		if code, ok := detectOne(signal); ok {
			return code
		}
	}
	return Base
}

func detectOne(signal string) (Code, bool) {
	signal = strings.TrimSpace(signal)
	if signal == "" {
		return "", false
	}
	if code, ok := zoneCurrencies[strings.ToLower(signal)]; ok {
		return code, true
	}
	if tags, _, err := language.ParseAcceptLanguage(strings.ReplaceAll(signal, "_", "-")); err == nil {
		for _, tag := range tags {
			region, conf := tag.Region()
			if conf != language.Exact {
				continue
			}
			if code, ok := currencyForRegion(region.String()); ok {
				return code, true
			}
		}
	}
	// Fall back to upper-case segments written as region codes ("en_KE.UTF-8", "KE").
	// Lower-case segments are language subtags and never match.
	segments := strings.FieldsFunc(signal, func(r rune) bool {
		return r < 'A' || r > 'Z'
	})
	for _, rc := range regionCurrencies {
		for _, seg := range segments {
			if seg == rc.region {
				return rc.code, true
			}
		}
	}
	return "", false
}

func currencyForRegion(region string) (Code, bool) {
	for _, rc := range regionCurrencies {
		if rc.region == region {
			return rc.code, true
		}
	}
	return "", false
}
