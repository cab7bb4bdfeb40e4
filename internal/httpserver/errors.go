package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/pricing"
	"marketplace-storefront/internal/service/session"

	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, err error) {
	var below *pricing.BelowMinimumError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &below):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    err.Error(),
			"category": below.Category,
			"minimum":  below.Minimum,
			"currency": below.Currency,
		})
	case errors.Is(err, domain.ErrUnsupportedCurrency),
		errors.Is(err, domain.ErrUnknownCountry),
		errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func invalidf(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}
