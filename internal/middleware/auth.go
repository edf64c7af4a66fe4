package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// AuthMiddleware creates a Gin middleware handler that validates access
// tokens. Validation goes through the token service so revoked tokens are
// rejected, not just tampered or expired ones. All rejections look the same
// to the caller.
func AuthMiddleware(tokenSvc portssvc.TokenValidatorSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, ok := BearerToken(c)
		if !ok {
			logger.Warn("Authorization header missing or malformed")
			unauthorized(c)
			return
		}

		claims, err := tokenSvc.ValidateToken(c.Request.Context(), tokenString, models.TokenTypeAccess)
		if err != nil {
			logger.Warn("Access token rejected", slog.String("error", err.Error()))
			unauthorized(c)
			return
		}

		userID := claims.Subject
		if userID == "" {
			logger.Error("User ID (subject) missing from valid token")
			unauthorized(c)
			return
		}

		// Store the user ID in the standard context and enrich the logger
		ctxWithUser := context.WithValue(c.Request.Context(), userIDKey, userID)
		enrichedLogger := logger.With(slog.String("user_id", userID))
		ctxWithLoggerAndUser := context.WithValue(ctxWithUser, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctxWithLoggerAndUser)

		c.Next()
	}
}

// OptionalAuthMiddleware attaches the user ID when the request carries a
// valid access token and lets the request through anonymously otherwise.
// An invalid token is treated the same as no token, so routes behind this
// middleware must not assume a user ID is present.
func OptionalAuthMiddleware(tokenSvc portssvc.TokenValidatorSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := BearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := tokenSvc.ValidateToken(c.Request.Context(), tokenString, models.TokenTypeAccess)
		if err != nil || claims.Subject == "" {
			GetLoggerFromCtx(c.Request.Context()).Debug("Ignoring invalid token on optional-auth route")
			c.Next()
			return
		}

		userID := claims.Subject
		ctxWithUser := context.WithValue(c.Request.Context(), userIDKey, userID)
		enrichedLogger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("user_id", userID))
		c.Request = c.Request.WithContext(context.WithValue(ctxWithUser, loggerCtxKey, enrichedLogger))

		c.Next()
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing credentials"})
}
