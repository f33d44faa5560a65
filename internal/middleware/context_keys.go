package middleware

import "github.com/gin-gonic/gin"

// contextKey is a private type so context values cannot collide.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	userRoleKey  = contextKey("userRole")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if v := c.Request.Context().Value(userIDKey); v != nil {
			return v.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetUserRoleFromContext retrieves the authenticated user's role, if any.
func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(userRoleKey); v != nil {
		role, ok := v.(string)
		return role, ok
	}
	return "", false
}
