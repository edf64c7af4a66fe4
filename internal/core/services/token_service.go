package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
	"github.com/mainmeal/mainmeal_backend/internal/models"
	"github.com/mainmeal/mainmeal_backend/internal/platform/config"
	"github.com/mainmeal/mainmeal_backend/internal/utils"
)

// tokenService implements TokenSvcFacade. Access tokens are stateless JWTs
// checked against the blacklist; refresh tokens additionally need a live row
// in the refresh token table, which is what makes rotation single-use.
type tokenService struct {
	cfg       *config.Config
	tokenRepo portsrepo.TokenRepositoryFacade
	now       func() time.Time
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, tokenRepo portsrepo.TokenRepositoryFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:       cfg,
		tokenRepo: tokenRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// IssuePair mints an access/refresh pair and records the refresh jti
// server-side so it can later be consumed exactly once.
func (s *tokenService) IssuePair(ctx context.Context, userID string) (dto.TokenPair, error) {
	now := s.now()

	accessToken, _, _, err := utils.GenerateToken(userID, models.TokenTypeAccess, s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.AccessTokenExpiryDuration, now)
	if err != nil {
		return dto.TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshJTI, refreshExpiry, err := utils.GenerateToken(userID, models.TokenTypeRefresh, s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.RefreshTokenExpiryDuration, now)
	if err != nil {
		return dto.TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	err = s.tokenRepo.SaveRefreshToken(ctx, models.RefreshToken{
		JTI:       refreshJTI,
		UserID:    userID,
		ExpiresAt: refreshExpiry,
		CreatedAt: now,
	})
	if err != nil {
		return dto.TokenPair{}, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return dto.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// ValidateToken checks signature, expiry, declared type and revocation state.
// Every rejection is apperrors.ErrUnauthorized; the reason is logged
// server-side but never handed to the caller.
func (s *tokenService) ValidateToken(ctx context.Context, tokenString, wantType string) (*utils.AuthClaims, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	claims, err := utils.ParseToken(tokenString, s.cfg.JWTSecret)
	if err != nil {
		logger.Debug("Token failed signature or expiry check", slog.String("error", err.Error()))
		return nil, apperrors.ErrUnauthorized
	}
	if claims.TokenType != wantType {
		logger.Debug("Token type mismatch", slog.String("want", wantType), slog.String("got", claims.TokenType))
		return nil, apperrors.ErrUnauthorized
	}
	if claims.ID == "" || claims.Subject == "" {
		logger.Debug("Token missing jti or subject")
		return nil, apperrors.ErrUnauthorized
	}

	blacklisted, err := s.tokenRepo.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if blacklisted {
		logger.Debug("Token is blacklisted", slog.String("jti", claims.ID))
		return nil, apperrors.ErrUnauthorized
	}

	// Refresh tokens must still be on record; a deleted row means the token
	// was rotated, revoked or belongs to a removed account.
	if wantType == models.TokenTypeRefresh {
		stored, err := s.tokenRepo.FindRefreshToken(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up refresh token: %w", err)
		}
		if stored == nil || stored.UserID != claims.Subject {
			logger.Debug("Refresh token has no live record", slog.String("jti", claims.ID))
			return nil, apperrors.ErrUnauthorized
		}
	}

	return claims, nil
}

// RotateRefreshToken trades a valid refresh token for a fresh pair. The
// presented token's row is consumed first; when two rotations race, the
// DELETE decides the winner and the loser gets ErrUnauthorized.
func (s *tokenService) RotateRefreshToken(ctx context.Context, refreshToken string) (string, dto.TokenPair, error) {
	claims, err := s.ValidateToken(ctx, refreshToken, models.TokenTypeRefresh)
	if err != nil {
		return "", dto.TokenPair{}, err
	}

	consumed, err := s.tokenRepo.ConsumeRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", dto.TokenPair{}, fmt.Errorf("failed to consume refresh token: %w", err)
	}
	if !consumed {
		middleware.GetLoggerFromCtx(ctx).Warn("Refresh token replay detected", slog.String("jti", claims.ID))
		return "", dto.TokenPair{}, apperrors.ErrUnauthorized
	}

	pair, err := s.IssuePair(ctx, claims.Subject)
	if err != nil {
		return "", dto.TokenPair{}, err
	}
	return claims.Subject, pair, nil
}

// RevokeAll logs the user out of every session. The presented access token is
// blacklisted when it parses to a usable jti, and all refresh tokens for the
// user are dropped regardless. Blacklisting twice is harmless.
func (s *tokenService) RevokeAll(ctx context.Context, accessToken string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	claims, err := utils.ParseToken(accessToken, s.cfg.JWTSecret)
	if err != nil {
		logger.Debug("Logout with unparseable access token", slog.String("error", err.Error()))
		return apperrors.ErrUnauthorized
	}
	if claims.Subject == "" {
		return apperrors.ErrUnauthorized
	}
	if claims.TokenType != models.TokenTypeAccess {
		logger.Debug("Logout requires an access token", slog.String("token_type", claims.TokenType))
		return apperrors.ErrUnauthorized
	}

	if claims.ID != "" {
		expiresAt := s.now().Add(s.cfg.AccessTokenExpiryDuration)
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
		err = s.tokenRepo.BlacklistToken(ctx, models.BlacklistedToken{
			JTI:           claims.ID,
			TokenType:     claims.TokenType,
			ExpiresAt:     expiresAt,
			BlacklistedAt: s.now(),
		})
		if err != nil {
			return fmt.Errorf("failed to blacklist access token: %w", err)
		}
	}

	removed, err := s.tokenRepo.DeleteRefreshTokensForUser(ctx, claims.Subject)
	if err != nil {
		return fmt.Errorf("failed to delete refresh tokens: %w", err)
	}
	logger.Info("User logged out everywhere",
		slog.String("user_id", claims.Subject),
		slog.Int64("refresh_tokens_revoked", removed),
	)
	return nil
}

// CleanupExpired purges refresh tokens and blacklist entries whose tokens
// have already expired. Dropping an expired blacklist row is safe because the
// token it guarded can no longer pass the expiry check.
func (s *tokenService) CleanupExpired(ctx context.Context, now time.Time) error {
	refreshRemoved, blacklistRemoved, err := s.tokenRepo.DeleteExpiredTokens(ctx, now.UTC())
	if err != nil {
		return fmt.Errorf("failed to clean up expired tokens: %w", err)
	}
	if refreshRemoved > 0 || blacklistRemoved > 0 {
		middleware.GetLoggerFromCtx(ctx).Info("Expired tokens purged",
			slog.Int64("refresh_tokens", refreshRemoved),
			slog.Int64("blacklist_entries", blacklistRemoved),
		)
	}
	return nil
}
