package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type sessionRequest struct {
	UserID string `json:"userId"`
}

type sessionResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId,omitempty"`
	ExpiresIn int    `json:"expiresIn"`
}

// createSession issues a bearer token. The user id comes from the upstream
// identity provider; an empty body starts an anonymous session.
func (h *handlers) createSession(c *gin.Context) {
	var req sessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid body")
			return
		}
	}
	token, sessionID, err := h.deps.Sessions.Issue(c.Request.Context(), req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionResponse{
		Token:     token,
		TokenType: "Bearer",
		SessionID: sessionID,
		UserID:    strings.TrimSpace(req.UserID),
		ExpiresIn: h.deps.Sessions.TTLSeconds(),
	})
}

func (h *handlers) deleteSession(c *gin.Context) {
	if err := h.deps.Sessions.Revoke(c.Request.Context(), tokenFrom(c)); err != nil {
		writeError(c, err)
		return
	}
	if id, ok := identityFrom(c); ok {
		h.deps.Shoppers.Forget(id)
	}
	c.Status(http.StatusNoContent)
}
