package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
)

// GoogleOAuthHandler handles Google sign-in requests.
type GoogleOAuthHandler struct {
	oauthService portssvc.GoogleOAuthSvcFacade
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(os portssvc.GoogleOAuthSvcFacade, us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		oauthService: os,
		userService:  us,
		tokenService: ts,
	}
}

// LoginWithGoogle godoc
// @Summary Sign in with Google
// @Description Validates a Google ID token, provisioning the account on first sign-in.
// @Tags auth
// @Accept json
// @Produce json
// @Param google body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [post]
func (h *GoogleOAuthHandler) LoginWithGoogle(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.oauthService.LoginWithIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err, "Failed to sign in with Google")
		return
	}

	pair, err := h.tokenService.IssuePair(c.Request.Context(), user.UserID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to issue tokens after Google sign-in", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to issue tokens"})
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthResponse(user, pair))
}
