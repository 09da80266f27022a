package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const adminKeyHeader = "X-Admin-Key"

// RequireAdmin guards admin routes with the shared secret. An empty
// configured key rejects everything.
func (h *Handler) RequireAdmin(c *gin.Context) {
	supplied := c.GetHeader(adminKeyHeader)
	if h.adminKey == "" || supplied == "" ||
		subtle.ConstantTimeCompare([]byte(supplied), []byte(h.adminKey)) != 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.Next()
}
