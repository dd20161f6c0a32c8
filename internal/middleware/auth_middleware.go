package middleware

import (
	"strings"

	"github.com/auca/lostandfound-backend/internal/errors"
	"github.com/auca/lostandfound-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// Context keys for user information
const (
	UserIDKey = "user_id"
)

// Authenticate requires a bearer token issued by the login flow.
// Tokens are opaque handles, not signed credentials. The user ID they
// carry is resolved here and placed in the request context.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Invalid authorization header")
			c.Abort()
			return
		}

		userID, ok := util.ParseAccessToken(parts[1])
		if !ok {
			log.Warn("Invalid bearer token", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)

		log.Debug("User authenticated", map[string]interface{}{
			"user_id": userID,
		})

		c.Next()
	}
}

// OptionalAuthenticate resolves the bearer token if one is present and
// continues as guest otherwise.
func OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		if userID, ok := util.ParseAccessToken(parts[1]); ok {
			c.Set(UserIDKey, userID)
		}

		c.Next()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}
