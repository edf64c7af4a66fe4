package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
	"github.com/mainmeal/mainmeal_backend/internal/utils"
)

// stubTokenValidator accepts exactly one token string and returns claims for it.
type stubTokenValidator struct {
	validToken string
	subject    string
}

func (s *stubTokenValidator) ValidateToken(_ context.Context, tokenString, wantType string) (*utils.AuthClaims, error) {
	if tokenString != s.validToken || wantType != "access" {
		return nil, apperrors.ErrUnauthorized
	}
	return &utils.AuthClaims{
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: s.subject,
			ID:      "jti-1",
		},
	}, nil
}

func authRouter(validator *stubTokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(validator), func(c *gin.Context) {
		userID, _ := middleware.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r := authRouter(&stubTokenValidator{validToken: "good-token", subject: "user-1"})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := authRouter(&stubTokenValidator{validToken: "good-token", subject: "user-1"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	r := authRouter(&stubTokenValidator{validToken: "good-token", subject: "user-1"})

	for _, header := range []string{"good-token", "Basic good-token", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equalf(t, http.StatusUnauthorized, w.Code, "header %q should be rejected", header)
	}
}

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	r := authRouter(&stubTokenValidator{validToken: "good-token", subject: "user-1"})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer revoked-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func optionalAuthRouter(validator *stubTokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/lookup", middleware.OptionalAuthMiddleware(validator), func(c *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "authenticated": ok})
	})
	return r
}

func TestOptionalAuthMiddleware_ValidToken(t *testing.T) {
	r := optionalAuthRouter(&stubTokenValidator{validToken: "good-token", subject: "user-1"})

	req := httptest.NewRequest(http.MethodGet, "/lookup", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"user-1"`)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestOptionalAuthMiddleware_NoTokenIsAnonymous(t *testing.T) {
	r := optionalAuthRouter(&stubTokenValidator{validToken: "good-token", subject: "user-1"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/lookup", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestOptionalAuthMiddleware_InvalidTokenIsAnonymous(t *testing.T) {
	r := optionalAuthRouter(&stubTokenValidator{validToken: "good-token", subject: "user-1"})

	// A bad token does not fail the request, it just carries no identity.
	req := httptest.NewRequest(http.MethodGet, "/lookup", nil)
	req.Header.Set("Authorization", "Bearer revoked-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}
