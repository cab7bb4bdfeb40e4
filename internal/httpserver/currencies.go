package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"marketplace-storefront/internal/currency"
	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/pricing"
	"marketplace-storefront/internal/shipping"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"base":       currency.Base,
		"currencies": currency.Supported(),
	})
}

// convertCurrency converts ?amount from ?from to ?to. Codes are checked
// strictly here even though the engine would fall back to base.
func (h *handlers) convertCurrency(c *gin.Context) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(c.Query("amount")), 64)
	if err != nil {
		badRequest(c, "amount must be a number")
		return
	}
	from, to, ok := currencyPair(c)
	if !ok {
		return
	}
	converted := currency.Convert(amount, from, to)
	c.JSON(http.StatusOK, gin.H{
		"amount":    amount,
		"from":      from,
		"to":        to,
		"rate":      currency.GetExchangeRate(from, to),
		"result":    converted,
		"rounded":   currency.Round(converted, to),
		"formatted": currency.FormatPrice(converted, to),
	})
}

func (h *handlers) exchangeRate(c *gin.Context) {
	from, to, ok := currencyPair(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from": from,
		"to":   to,
		"rate": currency.GetExchangeRate(from, to),
	})
}

func currencyPair(c *gin.Context) (from, to currency.Code, ok bool) {
	from, err := strictCode(c.Query("from"))
	if err != nil {
		writeError(c, err)
		return "", "", false
	}
	to, err = strictCode(c.Query("to"))
	if err != nil {
		writeError(c, err)
		return "", "", false
	}
	return from, to, true
}

// strictCode normalizes a request currency. Unlike currency.Normalize, an
// empty value is rejected.
func strictCode(raw string) (currency.Code, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &domain.ConfigurationError{Kind: "currency", Value: raw}
	}
	return currency.Normalize(raw)
}

func (h *handlers) listCountries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"default":   shipping.DefaultCountryCode,
		"countries": shipping.Countries(),
	})
}

type minimumCheckRequest struct {
	Price    *float64 `json:"price" binding:"required"`
	Currency string   `json:"currency"`
	Category string   `json:"category"`
}

func (h *handlers) minimumCheck(c *gin.Context) {
	var req minimumCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "price is required")
		return
	}
	code, err := currency.Normalize(req.Currency)
	if err != nil {
		writeError(c, err)
		return
	}
	minimum := pricing.MinimumPrice(req.Category, code)
	resp := gin.H{
		"valid":            true,
		"category":         req.Category,
		"currency":         code,
		"minimum":          currency.Round(minimum, code),
		"formattedMinimum": currency.FormatPrice(minimum, code),
	}
	if err := pricing.ValidateMinimumPrice(*req.Price, code, req.Category); err != nil {
		resp["valid"] = false
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}
