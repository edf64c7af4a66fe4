package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
)

// RateLimitHandler exposes the user's daily quota consumption.
type RateLimitHandler struct {
	rateLimiter portssvc.RateLimiterSvcFacade
}

// NewRateLimitHandler creates a new RateLimitHandler.
func NewRateLimitHandler(rl portssvc.RateLimiterSvcFacade) *RateLimitHandler {
	return &RateLimitHandler{rateLimiter: rl}
}

func registerRateLimitRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewRateLimitHandler(services.RateLimiter)
	rg.GET("/rate-limits/usage", h.GetUsage)
}

// GetUsage godoc
// @Summary Today's quota usage
// @Description Reports call counts and remaining quota for every metered endpoint, for the current UTC day.
// @Tags rate-limits
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UsageStatsResponse
// @Router /rate-limits/usage [get]
func (h *RateLimitHandler) GetUsage(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	stats, err := h.rateLimiter.UsageStats(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		respondError(c, err, "Failed to load usage stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
