package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
	"github.com/mainmeal/mainmeal_backend/internal/models"
	"github.com/mainmeal/mainmeal_backend/internal/platform/config"
	"github.com/mainmeal/mainmeal_backend/internal/utils"
)

// googleOAuthService implements the GoogleOAuthSvcFacade.
type googleOAuthService struct {
	cfg          *config.Config
	userRepo     portsrepo.UserRepositoryFacade
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates a new instance of googleOAuthService.
func NewGoogleOAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		cfg:      cfg,
		userRepo: userRepo,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)

// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
func (s *googleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	return utils.GenerateSecureRandomString(32)
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
func (s *googleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Google ID token rejected", slog.String("error", err.Error()))
		return nil, apperrors.ErrUnauthorized
	}
	return payload, nil
}

// LoginWithIDToken validates the Google ID token and returns the matching
// account, provisioning one on first sign-in. Provisioned accounts get an
// unguessable random password so only the Google flow can access them until
// the user sets a password of their own.
func (s *googleOAuthService) LoginWithIDToken(ctx context.Context, idTokenString string) (*models.User, error) {
	payload, err := s.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		return nil, err
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, apperrors.ErrUnauthorized
	}
	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = email
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	randomSecret, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate placeholder credential: %w", err)
	}
	hash, err := utils.HashPassword(randomSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder credential: %w", err)
	}

	now := time.Now().UTC()
	newUser := models.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		// A concurrent first sign-in may have provisioned the account.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.userRepo.FindUserByEmail(ctx, email)
		}
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Account provisioned via Google sign-in", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}
