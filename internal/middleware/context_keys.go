package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the
// request context. Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if v := c.Request.Context().Value(userIDKey); v != nil {
			if userID, ok := v.(string); ok {
				return userID, true
			}
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}
