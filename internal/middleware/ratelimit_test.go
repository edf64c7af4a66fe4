package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
)

// stubRateLimiter returns a canned AdmitResult or error.
type stubRateLimiter struct {
	result portssvc.AdmitResult
	err    error
	calls  int
}

func (s *stubRateLimiter) Admit(_ context.Context, _, _ string, _ time.Time) (portssvc.AdmitResult, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubRateLimiter) UsageStats(_ context.Context, _ string, _ time.Time) (dto.UsageStatsResponse, error) {
	return dto.UsageStatsResponse{}, nil
}

func (s *stubRateLimiter) LimitFor(_ string) int {
	return s.result.Limit
}

func quotaRouter(rl portssvc.RateLimiterSvcFacade, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if authenticated {
		r.Use(func(c *gin.Context) {
			c.Set("userID", "user-1")
		})
	}
	r.POST("/analyze", middleware.LLMQuotaMiddleware(rl, "analyze_recipe"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestLLMQuotaMiddleware_Admitted(t *testing.T) {
	resetAt := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	rl := &stubRateLimiter{result: portssvc.AdmitResult{
		Allowed:   true,
		Current:   5,
		Limit:     50,
		Remaining: 45,
		ResetAt:   resetAt,
	}}

	w := httptest.NewRecorder()
	quotaRouter(rl, true).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/analyze", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "50", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "45", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, strconv.FormatInt(resetAt.Unix(), 10), w.Header().Get("X-RateLimit-Reset"))
	assert.Equal(t, 1, rl.calls)
}

func TestLLMQuotaMiddleware_Denied(t *testing.T) {
	resetAt := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	rl := &stubRateLimiter{result: portssvc.AdmitResult{
		Allowed:   false,
		Current:   50,
		Limit:     50,
		Remaining: 0,
		ResetAt:   resetAt,
	}}

	w := httptest.NewRecorder()
	quotaRouter(rl, true).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/analyze", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	// Headers are present on denials too.
	assert.Equal(t, "50", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	var body dto.RateLimitExceededResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "rate_limit_exceeded", body.Error)
	assert.Equal(t, 50, body.Current)
	assert.Equal(t, 50, body.Limit)
	assert.True(t, body.ResetAt.Equal(resetAt))
}

func TestLLMQuotaMiddleware_StorageErrorFailsClosed(t *testing.T) {
	rl := &stubRateLimiter{err: errors.New("connection refused")}

	w := httptest.NewRecorder()
	quotaRouter(rl, true).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/analyze", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLLMQuotaMiddleware_UnauthenticatedRejected(t *testing.T) {
	rl := &stubRateLimiter{result: portssvc.AdmitResult{Allowed: true, Limit: 50}}

	w := httptest.NewRecorder()
	quotaRouter(rl, false).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/analyze", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, rl.calls)
}
