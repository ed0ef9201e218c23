package auth

import "github.com/gin-gonic/gin"

const (
	ctxUserID = "auth.userID"
	ctxRole   = "auth.role"
)

func SetIdentity(c *gin.Context, userID, role string) {
	c.Set(ctxUserID, userID)
	c.Set(ctxRole, role)
}

func UserID(c *gin.Context) string {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func Role(c *gin.Context) string {
	if v, ok := c.Get(ctxRole); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
