package services

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/models"
	"github.com/mainmeal/mainmeal_backend/internal/utils"
)

// TokenIssuerSvc mints token pairs.
type TokenIssuerSvc interface {
	// IssuePair mints a fresh access/refresh pair for the user and records
	// the refresh token server-side.
	IssuePair(ctx context.Context, userID string) (dto.TokenPair, error)
}

// TokenValidatorSvc checks presented tokens.
type TokenValidatorSvc interface {
	// ValidateToken verifies signature, expiry, declared type and revocation
	// state. Every failure surfaces as apperrors.ErrUnauthorized so callers
	// cannot distinguish why a token was rejected.
	ValidateToken(ctx context.Context, tokenString, wantType string) (*utils.AuthClaims, error)
}

// TokenRotatorSvc handles refresh and revocation.
type TokenRotatorSvc interface {
	// RotateRefreshToken trades a valid refresh token for a new pair. The
	// presented token is consumed; presenting it again fails.
	RotateRefreshToken(ctx context.Context, refreshToken string) (string, dto.TokenPair, error)

	// RevokeAll logs the user out everywhere: the presented access token is
	// blacklisted and all of the user's refresh tokens are deleted.
	RevokeAll(ctx context.Context, accessToken string) error
}

// TokenJanitorSvc purges rows whose tokens have already expired.
type TokenJanitorSvc interface {
	CleanupExpired(ctx context.Context, now time.Time) error
}

// TokenSvcFacade combines all token lifecycle service interfaces
type TokenSvcFacade interface {
	TokenIssuerSvc
	TokenValidatorSvc
	TokenRotatorSvc
	TokenJanitorSvc
}

// GoogleOAuthSvcFacade defines the interface for Google sign-in operations.
type GoogleOAuthSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
	// LoginWithIDToken validates the ID token, provisioning the account on
	// first sign-in, and returns the user.
	LoginWithIDToken(ctx context.Context, idTokenString string) (*models.User, error)
}
