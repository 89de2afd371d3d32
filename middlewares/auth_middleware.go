package middlewares

import (
	"net/http"
	"strings"

	"github.com/iCodeLakshay/fit-tracker-backend/services"

	"github.com/gin-gonic/gin"
)

// ContextKeyUserID is where the authenticated user's id lives in the gin
// context once the bearer gate has passed.
const ContextKeyUserID = "userID"

// AuthMiddleware verifies the bearer token and attaches the resolved user
// id for downstream handlers. Every protected route composes with it.
func AuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// GetUserID returns the authenticated user id, or 0 when the request never
// passed the auth gate.
func GetUserID(c *gin.Context) uint {
	v, ok := c.Get(ContextKeyUserID)
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}
