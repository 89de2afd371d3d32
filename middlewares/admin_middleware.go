package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminOnly gates internal endpoints behind a shared key supplied in the
// X-Admin-Key header. With no key configured the endpoint is disabled
// outright.
func AdminOnly(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminKey == "" || c.GetHeader("X-Admin-Key") != adminKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Admin access required"})
			return
		}
		c.Next()
	}
}
