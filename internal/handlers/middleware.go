package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// operatorKey is the gin context key holding the authenticated operator's user id.
const operatorKey = "operatorId"

func (h *Handler) operatorMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || strings.TrimSpace(token) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	operatorID, err := h.services.ParseToken(strings.TrimSpace(token))
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "path", c.FullPath(), "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(operatorKey, operatorID)
	c.Next()
}

// operatorID returns the authenticated operator, 0 outside protected routes.
func operatorID(c *gin.Context) int {
	return c.GetInt(operatorKey)
}
