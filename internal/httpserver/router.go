package httpserver

import (
	"context"
	"errors"
	"time"

	"marketplace-storefront/internal/domain"
	productrepo "marketplace-storefront/internal/repository/product"
	"marketplace-storefront/internal/service/session"
	"marketplace-storefront/internal/service/shopper"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionService issues and resolves bearer tokens.
type SessionService interface {
	Issue(ctx context.Context, userID string) (token, sessionID string, err error)
	Lookup(ctx context.Context, token string) (session.Identity, error)
	Revoke(ctx context.Context, token string) error
	TTLSeconds() int
}

// ShopperProvider hands out the per-session stores.
type ShopperProvider interface {
	Get(ctx context.Context, id session.Identity, locale string) *shopper.Shopper
	Forget(id session.Identity)
}

type ProductService interface {
	List(ctx context.Context, filter productrepo.ListFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

// Deps groups the services the router needs.
type Deps struct {
	Sessions SessionService
	Shoppers ShopperProvider
	Products ProductService
}

func (d Deps) validate() error {
	if d.Sessions == nil {
		return errors.New("httpserver: session service required")
	}
	if d.Shoppers == nil {
		return errors.New("httpserver: shopper provider required")
	}
	if d.Products == nil {
		return errors.New("httpserver: product service required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, ready Pinger, deps Deps, opts Options) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery(), cors.New(corsConfig(opts.AllowedOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(ready))

	h := &handlers{deps: deps}

	router.POST("/sessions", h.createSession)
	router.GET("/currencies", h.listCurrencies)
	router.GET("/currencies/convert", h.convertCurrency)
	router.GET("/currencies/rate", h.exchangeRate)
	router.GET("/shipping/countries", h.listCountries)
	router.POST("/pricing/minimum-check", h.minimumCheck)

	catalog := router.Group("/products", optionalSession(deps))
	catalog.GET("", h.listProducts)
	catalog.GET("/:id", h.getProduct)

	authed := router.Group("", requireSession(deps))
	authed.DELETE("/sessions", h.deleteSession)

	me := authed.Group("/me")
	me.GET("/currency", h.getCurrency)
	me.PUT("/currency", h.setCurrency)

	me.GET("/cart", h.getCart)
	me.POST("/cart/items", h.addCartItem)
	me.PATCH("/cart/items/:id", h.updateCartItem)
	me.DELETE("/cart/items/:id", h.removeCartItem)
	me.DELETE("/cart", h.clearCart)
	me.POST("/cart/open", h.setCartOpen(true))
	me.POST("/cart/close", h.setCartOpen(false))

	me.GET("/wishlist", h.getWishlist)
	me.POST("/wishlist/items", h.addWishlistItem)
	me.DELETE("/wishlist/items/:id", h.removeWishlistItem)
	me.DELETE("/wishlist", h.clearWishlist)

	me.GET("/saved-searches", h.listSavedSearches)
	me.POST("/saved-searches", h.createSavedSearch)
	me.DELETE("/saved-searches/:id", h.deleteSavedSearch)
	me.GET("/saved-searches/:id/products", h.runSavedSearch)

	me.GET("/checkout/quote", h.checkoutQuote)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

type handlers struct {
	deps Deps
}
