package middleware

import (
	"net/http"
	"strings"

	"github.com/gigflow/backend/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie is the HttpOnly cookie carrying the session token.
	SessionCookie = "token"

	ContextUserID = "user_id"
	ContextName   = "name"
	ContextEmail  = "email"
)

// extractToken pulls the session token from the request: the HttpOnly cookie
// set at login, or a Bearer authorization header for non-browser clients.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}

// AuthRequired is a middleware that checks for a valid session token and
// places the authenticated user identity in the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authentication required"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextName, claims.Name)
		c.Set(ContextEmail, claims.Email)

		c.Next()
	}
}

// GetUserID gets the current user ID from context.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// GetUserName gets the current user name from context.
func GetUserName(c *gin.Context) string {
	if name, exists := c.Get(ContextName); exists {
		return name.(string)
	}
	return ""
}
