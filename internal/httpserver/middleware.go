package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"marketplace-storefront/internal/service/session"
	"marketplace-storefront/internal/service/shopper"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ctxKey string

const (
	identityCtxKey ctxKey = "identity"
	shopperCtxKey  ctxKey = "shopper"
	tokenCtxKey    ctxKey = "token"
)

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("request", fields...)
			return
		}
		logger.Debug("request", fields...)
	}
}

// requireSession resolves the bearer token into a shopper and rejects the
// request when there is none.
func requireSession(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		if !attachShopper(c, deps, token) {
			return
		}
		c.Next()
	}
}

// optionalSession attaches a shopper when a token is sent. A token that does
// not resolve is still rejected.
func optionalSession(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token != "" && !attachShopper(c, deps, token) {
			return
		}
		c.Next()
	}
}

func attachShopper(c *gin.Context, deps Deps, token string) bool {
	id, err := deps.Sessions.Lookup(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, session.ErrInvalidToken) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return false
		}
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
		return false
	}
	sh := deps.Shoppers.Get(c.Request.Context(), id, c.GetHeader("Accept-Language"))
	ctx := context.WithValue(c.Request.Context(), identityCtxKey, id)
	ctx = context.WithValue(ctx, shopperCtxKey, sh)
	ctx = context.WithValue(ctx, tokenCtxKey, token)
	c.Request = c.Request.WithContext(ctx)
	return true
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func shopperFrom(c *gin.Context) *shopper.Shopper {
	sh, _ := c.Request.Context().Value(shopperCtxKey).(*shopper.Shopper)
	return sh
}

func identityFrom(c *gin.Context) (session.Identity, bool) {
	id, ok := c.Request.Context().Value(identityCtxKey).(session.Identity)
	return id, ok
}

func tokenFrom(c *gin.Context) string {
	token, _ := c.Request.Context().Value(tokenCtxKey).(string)
	return token
}
