package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
)

// LLMQuotaMiddleware spends one call from the caller's daily quota for the
// named endpoint before the handler runs. It must be mounted after
// AuthMiddleware. The X-RateLimit headers are set on every response,
// admitted or not, and a storage failure denies the call rather than
// letting it through unmetered.
func LLMQuotaMiddleware(rateLimiter portssvc.RateLimiterSvcFacade, endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			logger.Error("Quota check reached without an authenticated user", slog.String("endpoint", endpoint))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing credentials"})
			return
		}

		result, err := rateLimiter.Admit(c.Request.Context(), userID, endpoint, time.Now().UTC())
		if err != nil {
			logger.Error("Quota check failed", slog.String("endpoint", endpoint), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during rate limit check"})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			logger.Warn("Daily quota exhausted",
				slog.String("endpoint", endpoint),
				slog.Int("current", result.Current),
				slog.Int("limit", result.Limit),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.RateLimitExceededResponse{
				Error:   "rate_limit_exceeded",
				Message: "Daily limit reached for " + endpoint + ". Quota resets at midnight UTC.",
				Current: result.Current,
				Limit:   result.Limit,
				ResetAt: result.ResetAt,
			})
			return
		}

		c.Next()
	}
}

// RateLimit creates a Gin middleware for per-IP rate limiting. It fronts the
// credential endpoints so password guessing gets throttled before any
// database work happens.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		context, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to get rate limit context", slog.String("ip", ip), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during rate limit check"})
			return
		}

		if context.Reached {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", context.Limit), slog.Int64("remaining_requests", context.Remaining))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}
