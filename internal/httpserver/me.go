package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/pricing"
	productrepo "marketplace-storefront/internal/repository/product"

	"github.com/gin-gonic/gin"
)

type currencyRequest struct {
	Currency string `json:"currency" binding:"required"`
}

func (h *handlers) getCurrency(c *gin.Context) {
	c.JSON(http.StatusOK, toCurrencyResponse(shopperFrom(c)))
}

// setCurrency applies the choice immediately; the profile write completes in
// the background and may later roll back.
func (h *handlers) setCurrency(c *gin.Context) {
	var req currencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "currency is required")
		return
	}
	sh := shopperFrom(c)
	if err := sh.Currency.SetUserCurrency(c.Request.Context(), req.Currency); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCurrencyResponse(sh))
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, toCartResponse(shopperFrom(c), domain.NoticeNone))
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "productId is required")
		return
	}
	p, err := h.deps.Products.Get(c.Request.Context(), req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	sh := shopperFrom(c)
	notice := sh.Cart.AddToCart(c.Request.Context(), p.CartLine(), req.Quantity)
	c.JSON(http.StatusOK, toCartResponse(sh, notice))
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "quantity is required")
		return
	}
	sh := shopperFrom(c)
	notice := sh.Cart.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity)
	c.JSON(http.StatusOK, toCartResponse(sh, notice))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	sh := shopperFrom(c)
	notice := sh.Cart.RemoveFromCart(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, toCartResponse(sh, notice))
}

func (h *handlers) clearCart(c *gin.Context) {
	sh := shopperFrom(c)
	notice := sh.Cart.ClearCart(c.Request.Context())
	c.JSON(http.StatusOK, toCartResponse(sh, notice))
}

func (h *handlers) setCartOpen(open bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := shopperFrom(c)
		sh.Cart.SetOpen(open)
		c.JSON(http.StatusOK, toCartResponse(sh, domain.NoticeNone))
	}
}

type addWishlistItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func (h *handlers) getWishlist(c *gin.Context) {
	c.JSON(http.StatusOK, toWishlistResponse(shopperFrom(c), domain.NoticeNone))
}

func (h *handlers) addWishlistItem(c *gin.Context) {
	var req addWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "productId is required")
		return
	}
	p, err := h.deps.Products.Get(c.Request.Context(), req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	sh := shopperFrom(c)
	notice := sh.Wishlist.AddToWishlist(c.Request.Context(), p.WishlistItem())
	c.JSON(http.StatusOK, toWishlistResponse(sh, notice))
}

func (h *handlers) removeWishlistItem(c *gin.Context) {
	sh := shopperFrom(c)
	notice := sh.Wishlist.RemoveFromWishlist(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, toWishlistResponse(sh, notice))
}

func (h *handlers) clearWishlist(c *gin.Context) {
	sh := shopperFrom(c)
	notice := sh.Wishlist.ClearWishlist(c.Request.Context())
	c.JSON(http.StatusOK, toWishlistResponse(sh, notice))
}

type savedSearchRequest struct {
	Label   string               `json:"label"`
	Query   string               `json:"query"`
	Filters domain.SearchFilters `json:"filters"`
}

func (h *handlers) listSavedSearches(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": shopperFrom(c).Searches.List()})
}

func (h *handlers) createSavedSearch(c *gin.Context) {
	var req savedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	saved, err := shopperFrom(c).Searches.Save(c.Request.Context(), req.Label, req.Query, req.Filters)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *handlers) deleteSavedSearch(c *gin.Context) {
	if err := shopperFrom(c).Searches.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// runSavedSearch reruns a saved search against the catalogue.
func (h *handlers) runSavedSearch(c *gin.Context) {
	sh := shopperFrom(c)
	id := c.Param("id")
	for _, s := range sh.Searches.List() {
		if s.ID != id {
			continue
		}
		products, err := h.deps.Products.List(c.Request.Context(), productrepo.ListFilter{
			Query:   s.Query,
			Filters: s.Filters,
			Limit:   parseLimit(c.Query("limit")),
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"search":  s,
			"results": toProductViews(products, sh.Currency.Current()),
		})
		return
	}
	writeError(c, domain.ErrNotFound)
}

// checkoutQuote prices the current cart for ?country. The seller country and
// digital flag are optional.
func (h *handlers) checkoutQuote(c *gin.Context) {
	digital := false
	if raw := strings.TrimSpace(c.Query("digital")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "digital must be a boolean")
			return
		}
		digital = v
	}
	sh := shopperFrom(c)
	quote := pricing.Quote(pricing.QuoteInput{
		Subtotal:        sh.Cart.TotalPrice(),
		Country:         c.Query("country"),
		SellerCountry:   c.Query("sellerCountry"),
		IsDigital:       digital,
		DisplayCurrency: sh.Currency.Current(),
	})
	c.JSON(http.StatusOK, quote)
}
