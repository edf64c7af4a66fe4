package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

type PgxTokenRepository struct {
	BaseRepository
}

func newPgxTokenRepository(db *pgxpool.Pool) portsrepo.TokenRepositoryFacade {
	return &PgxTokenRepository{BaseRepository{Pool: db}}
}

// Ensure PgxTokenRepository implements portsrepo.TokenRepositoryFacade
var _ portsrepo.TokenRepositoryFacade = (*PgxTokenRepository)(nil)

func (r *PgxTokenRepository) SaveRefreshToken(ctx context.Context, token models.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (jti, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query, token.JTI, token.UserID, token.ExpiresAt, token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (r *PgxTokenRepository) FindRefreshToken(ctx context.Context, jti string) (*models.RefreshToken, error) {
	query := `
		SELECT jti, user_id, expires_at, created_at
		FROM refresh_tokens
		WHERE jti = $1;
	`
	var token models.RefreshToken
	err := r.Pool.QueryRow(ctx, query, jti).Scan(&token.JTI, &token.UserID, &token.ExpiresAt, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	return &token, nil
}

// ConsumeRefreshToken relies on DELETE being atomic per row: when two
// rotations race on the same jti, only one sees RowsAffected 1.
func (r *PgxTokenRepository) ConsumeRefreshToken(ctx context.Context, jti string) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE jti = $1`, jti)
	if err != nil {
		return false, fmt.Errorf("failed to consume refresh token: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxTokenRepository) DeleteRefreshTokensForUser(ctx context.Context, userID string) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete refresh tokens for user %s: %w", userID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxTokenRepository) BlacklistToken(ctx context.Context, token models.BlacklistedToken) error {
	query := `
		INSERT INTO blacklisted_tokens (jti, token_type, expires_at, blacklisted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (jti) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query, token.JTI, token.TokenType, token.ExpiresAt, token.BlacklistedAt)
	if err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

func (r *PgxTokenRepository) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM blacklisted_tokens WHERE jti = $1)`, jti).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists, nil
}

func (r *PgxTokenRepository) DeleteExpiredTokens(ctx context.Context, cutoff time.Time) (int64, int64, error) {
	refreshTag, err := r.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to purge expired refresh tokens: %w", err)
	}
	blacklistTag, err := r.Pool.Exec(ctx, `DELETE FROM blacklisted_tokens WHERE expires_at < $1`, cutoff)
	if err != nil {
		return refreshTag.RowsAffected(), 0, fmt.Errorf("failed to purge expired blacklist entries: %w", err)
	}
	return refreshTag.RowsAffected(), blacklistTag.RowsAffected(), nil
}
