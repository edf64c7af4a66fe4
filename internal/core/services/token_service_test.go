package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/core/services"
	"github.com/mainmeal/mainmeal_backend/internal/models"
	"github.com/mainmeal/mainmeal_backend/internal/platform/config"
)

// fakeTokenRepo is an in-memory TokenRepositoryFacade. State is keyed the
// same way the real tables are, so consume-once and blacklist semantics
// behave exactly like the SQL implementation.
type fakeTokenRepo struct {
	refreshTokens map[string]models.RefreshToken
	blacklist     map[string]models.BlacklistedToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{
		refreshTokens: make(map[string]models.RefreshToken),
		blacklist:     make(map[string]models.BlacklistedToken),
	}
}

func (f *fakeTokenRepo) SaveRefreshToken(_ context.Context, token models.RefreshToken) error {
	f.refreshTokens[token.JTI] = token
	return nil
}

func (f *fakeTokenRepo) FindRefreshToken(_ context.Context, jti string) (*models.RefreshToken, error) {
	token, ok := f.refreshTokens[jti]
	if !ok {
		return nil, nil
	}
	return &token, nil
}

func (f *fakeTokenRepo) ConsumeRefreshToken(_ context.Context, jti string) (bool, error) {
	if _, ok := f.refreshTokens[jti]; !ok {
		return false, nil
	}
	delete(f.refreshTokens, jti)
	return true, nil
}

func (f *fakeTokenRepo) DeleteRefreshTokensForUser(_ context.Context, userID string) (int64, error) {
	var removed int64
	for jti, token := range f.refreshTokens {
		if token.UserID == userID {
			delete(f.refreshTokens, jti)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeTokenRepo) BlacklistToken(_ context.Context, token models.BlacklistedToken) error {
	if _, ok := f.blacklist[token.JTI]; ok {
		return nil
	}
	f.blacklist[token.JTI] = token
	return nil
}

func (f *fakeTokenRepo) IsTokenBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := f.blacklist[jti]
	return ok, nil
}

func (f *fakeTokenRepo) DeleteExpiredTokens(_ context.Context, cutoff time.Time) (int64, int64, error) {
	var refreshRemoved, blacklistRemoved int64
	for jti, token := range f.refreshTokens {
		if token.ExpiresAt.Before(cutoff) {
			delete(f.refreshTokens, jti)
			refreshRemoved++
		}
	}
	for jti, token := range f.blacklist {
		if token.ExpiresAt.Before(cutoff) {
			delete(f.blacklist, jti)
			blacklistRemoved++
		}
	}
	return refreshRemoved, blacklistRemoved, nil
}

func testTokenConfig() *config.Config {
	return &config.Config{
		JWTSecret:                  "test-secret-key-at-least-32-chars-long",
		JWTIssuer:                  "mainmeal-test",
		AccessTokenExpiryDuration:  time.Hour,
		RefreshTokenExpiryDuration: 7 * 24 * time.Hour,
	}
}

func newTestTokenService() (portssvc.TokenSvcFacade, *fakeTokenRepo) {
	repo := newFakeTokenRepo()
	return services.NewTokenService(testTokenConfig(), repo), repo
}

func TestTokenService_IssueAndValidatePair(t *testing.T) {
	svc, repo := newTestTokenService()
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Len(t, repo.refreshTokens, 1)

	accessClaims, err := svc.ValidateToken(ctx, pair.AccessToken, models.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", accessClaims.Subject)

	refreshClaims, err := svc.ValidateToken(ctx, pair.RefreshToken, models.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", refreshClaims.Subject)
}

func TestTokenService_ValidateToken_TypeMismatch(t *testing.T) {
	svc, _ := newTestTokenService()
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, "user-1")
	require.NoError(t, err)

	// An access token must never be accepted where a refresh token is
	// expected, and vice versa.
	_, err = svc.ValidateToken(ctx, pair.AccessToken, models.TokenTypeRefresh)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.ValidateToken(ctx, pair.RefreshToken, models.TokenTypeAccess)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenService_ValidateToken_Garbage(t *testing.T) {
	svc, _ := newTestTokenService()

	_, err := svc.ValidateToken(context.Background(), "not-a-jwt", models.TokenTypeAccess)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenService_RotateRefreshToken(t *testing.T) {
	svc, _ := newTestTokenService()
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, "user-1")
	require.NoError(t, err)

	userID, newPair, err := svc.RotateRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	require.NotEmpty(t, newPair.AccessToken)
	require.NotEmpty(t, newPair.RefreshToken)
	assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)
}

func TestTokenService_RotateRefreshToken_ReplayRejected(t *testing.T) {
	svc, _ := newTestTokenService()
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, "user-1")
	require.NoError(t, err)

	_, _, err = svc.RotateRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)

	// The original refresh token was consumed by the first rotation.
	_, _, err = svc.RotateRefreshToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenService_RotateRefreshToken_AccessTokenRejected(t *testing.T) {
	svc, _ := newTestTokenService()
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, "user-1")
	require.NoError(t, err)

	_, _, err = svc.RotateRefreshToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenService_RevokeAll(t *testing.T) {
	svc, repo := newTestTokenService()
	ctx := context.Background()

	pair1, err := svc.IssuePair(ctx, "user-1")
	require.NoError(t, err)
	pair2, err := svc.IssuePair(ctx, "user-1")
	require.NoError(t, err)
	otherPair, err := svc.IssuePair(ctx, "user-2")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAll(ctx, pair1.AccessToken))

	// The presented access token is blacklisted and every refresh token for
	// the user is gone, including ones from other sessions.
	_, err = svc.ValidateToken(ctx, pair1.AccessToken, models.TokenTypeAccess)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	_, err = svc.ValidateToken(ctx, pair1.RefreshToken, models.TokenTypeRefresh)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	_, err = svc.ValidateToken(ctx, pair2.RefreshToken, models.TokenTypeRefresh)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// Other users are untouched.
	_, err = svc.ValidateToken(ctx, otherPair.RefreshToken, models.TokenTypeRefresh)
	assert.NoError(t, err)
	assert.Len(t, repo.refreshTokens, 1)
}

func TestTokenService_RevokeAll_RefreshTokenRejected(t *testing.T) {
	svc, repo := newTestTokenService()
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, "user-1")
	require.NoError(t, err)

	// Logout takes the access token; a refresh token is refused and leaves
	// the session intact.
	err = svc.RevokeAll(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Len(t, repo.refreshTokens, 1)

	_, err = svc.ValidateToken(ctx, pair.RefreshToken, models.TokenTypeRefresh)
	assert.NoError(t, err)
}

func TestTokenService_RevokeAll_Idempotent(t *testing.T) {
	svc, _ := newTestTokenService()
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAll(ctx, pair.AccessToken))
	require.NoError(t, svc.RevokeAll(ctx, pair.AccessToken))
}

func TestTokenService_CleanupExpired(t *testing.T) {
	svc, repo := newTestTokenService()
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, "user-1")
	require.NoError(t, err)

	// A cutoff far in the future expires everything outstanding.
	require.NoError(t, svc.CleanupExpired(ctx, time.Now().Add(30*24*time.Hour)))
	assert.Empty(t, repo.refreshTokens)

	_, err = svc.ValidateToken(ctx, pair.RefreshToken, models.TokenTypeRefresh)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
