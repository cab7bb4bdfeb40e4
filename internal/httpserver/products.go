package httpserver

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"marketplace-storefront/internal/currency"
	"marketplace-storefront/internal/domain"
	productrepo "marketplace-storefront/internal/repository/product"

	"github.com/gin-gonic/gin"
)

const (
	defaultProductLimit = 50
	maxProductLimit     = 200
)

// listProducts searches the catalogue with ?q, ?category (comma list),
// ?minPrice and ?maxPrice (base currency) and ?limit.
func (h *handlers) listProducts(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		writeError(c, err)
		return
	}
	products, err := h.deps.Products.List(c.Request.Context(), productrepo.ListFilter{
		Query:   strings.TrimSpace(c.Query("q")),
		Filters: filters,
		Limit:   parseLimit(c.Query("limit")),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	display := displayCurrency(c)
	c.JSON(http.StatusOK, gin.H{
		"currency": display,
		"count":    len(products),
		"results":  toProductViews(products, display),
	})
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductView(*p, displayCurrency(c)))
}

// displayCurrency is the session's currency, or the Accept-Language guess
// when there is no session.
func displayCurrency(c *gin.Context) currency.Code {
	if sh := shopperFrom(c); sh != nil {
		return sh.Currency.Current()
	}
	return currency.DetectCurrency(c.GetHeader("Accept-Language"))
}

func parseFilters(c *gin.Context) (domain.SearchFilters, error) {
	var f domain.SearchFilters
	for _, part := range strings.Split(c.Query("category"), ",") {
		if part = strings.TrimSpace(part); part != "" {
			f.Categories = append(f.Categories, part)
		}
	}
	var err error
	if f.MinPrice, err = parsePrice(c.Query("minPrice"), "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePrice(c.Query("maxPrice"), "maxPrice"); err != nil {
		return f, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return f, invalidf("minPrice greater than maxPrice")
	}
	return f, nil
}

func parsePrice(raw, name string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, invalidf(name + " must be a non-negative number")
	}
	return &v, nil
}

func parseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return defaultProductLimit
	}
	if n > maxProductLimit {
		return maxProductLimit
	}
	return n
}
