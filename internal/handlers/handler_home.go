package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// registerHomeRoutes sets up the unauthenticated service routes.
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "MainMeal API",
			"status":  "running",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
}

// respondError maps service errors onto HTTP statuses. Anything that is not
// one of the known sentinels is a 500 with a generic body; internals stay in
// the logs.
func respondError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Already exists"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or missing credentials"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallbackMsg})
	}
}
