package repositories

import (
	"context"
	"time"

	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// RefreshTokenStore manages the server-side refresh token table. A refresh
// token is only honored while its jti row exists here.
type RefreshTokenStore interface {
	// SaveRefreshToken records a newly issued refresh token.
	SaveRefreshToken(ctx context.Context, token models.RefreshToken) error

	// FindRefreshToken retrieves a refresh token row by jti.
	FindRefreshToken(ctx context.Context, jti string) (*models.RefreshToken, error)

	// ConsumeRefreshToken deletes the row for jti and reports whether it
	// existed. Exactly one caller can consume a given jti.
	ConsumeRefreshToken(ctx context.Context, jti string) (bool, error)

	// DeleteRefreshTokensForUser removes every refresh token owned by userID.
	DeleteRefreshTokensForUser(ctx context.Context, userID string) (int64, error)
}

// TokenBlacklist manages revoked jtis. Entries only need to live until the
// underlying token would have expired anyway.
type TokenBlacklist interface {
	// BlacklistToken records a revoked jti. Re-blacklisting is a no-op.
	BlacklistToken(ctx context.Context, token models.BlacklistedToken) error

	// IsTokenBlacklisted reports whether jti has been revoked.
	IsTokenBlacklisted(ctx context.Context, jti string) (bool, error)
}

// TokenJanitor removes rows that expired before the cutoff.
type TokenJanitor interface {
	// DeleteExpiredTokens purges expired refresh tokens and blacklist entries,
	// returning the number of rows removed from each table.
	DeleteExpiredTokens(ctx context.Context, cutoff time.Time) (refreshRemoved, blacklistRemoved int64, err error)
}

// TokenRepositoryFacade combines all token-related repository interfaces
type TokenRepositoryFacade interface {
	RefreshTokenStore
	TokenBlacklist
	TokenJanitor
}
