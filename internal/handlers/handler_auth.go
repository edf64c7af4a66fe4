package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
	}
}

// registerAuthRoutes sets up the routes for authentication. The credential
// endpoints sit behind a per-IP limiter so password guessing gets throttled
// before any database work.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer, authRequired gin.HandlerFunc) {
	h := NewAuthHandler(services.User, services.Token)
	oh := NewGoogleOAuthHandler(services.GoogleOAuth, services.User, services.Token)

	// 10 attempts per minute per IP on the credential endpoints.
	rate, _ := limiter.NewRateFromFormatted("10-M")
	limitMiddleware := middleware.RateLimit(limiter.New(memory.NewStore(), rate))

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", limitMiddleware, h.Register)
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/google", limitMiddleware, oh.LoginWithGoogle)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)

		auth.GET("/me", authRequired, h.Me)
		auth.PUT("/me", authRequired, h.UpdateProfile)
		auth.POST("/change-password", authRequired, h.ChangePassword)
		auth.DELETE("/me", authRequired, h.DeleteAccount)
	}
}

// Register godoc
// @Summary Register new account
// @Description Creates an account and returns the first token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	pair, err := h.tokenService.IssuePair(c.Request.Context(), user.UserID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to issue tokens after registration", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to issue tokens"})
		return
	}

	c.JSON(http.StatusCreated, dto.NewAuthResponse(user, pair))
}

// Login godoc
// @Summary Log in
// @Description Authenticates with email and password, returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	pair, err := h.tokenService.IssuePair(c.Request.Context(), user.UserID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to issue tokens on login", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to issue tokens"})
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthResponse(user, pair))
}

// Refresh godoc
// @Summary Rotate refresh token
// @Description Trades a refresh token for a new pair. The old token is consumed.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, pair, err := h.tokenService.RotateRefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err, "Failed to refresh tokens")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthResponse(user, pair))
}

// Logout godoc
// @Summary Log out everywhere
// @Description Blacklists the presented access token and revokes all refresh tokens.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenString, ok := middleware.BearerToken(c)
	if !ok {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or missing credentials"})
		return
	}

	if err := h.tokenService.RevokeAll(c.Request.Context(), tokenString); err != nil {
		respondError(c, err, "Failed to log out")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or missing credentials"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateProfile godoc
// @Summary Update profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/me [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or missing credentials"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ChangePassword godoc
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param password body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or missing credentials"})
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondError(c, err, "Failed to change password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// DeleteAccount godoc
// @Summary Delete account
// @Description Removes the account and everything it owns.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [delete]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or missing credentials"})
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
