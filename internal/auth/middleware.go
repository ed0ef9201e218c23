package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avadra/storefront-service/internal/model"
)

// Protect validates the bearer token and stamps the caller's identity onto
// the request context.
func Protect(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, invalid token format"})
			return
		}

		claims, err := tm.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}

		SetIdentity(c, claims.UserID, claims.Role)
		c.Next()
	}
}

// AdminOnly must run after Protect.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied"})
			return
		}
		c.Next()
	}
}
