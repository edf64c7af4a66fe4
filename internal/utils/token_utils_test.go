package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func TestGenerateToken_RoundTrip(t *testing.T) {
	now := time.Now()

	signed, jti, expiresAt, err := GenerateToken("user-1", "access", testSecret, "test-issuer", time.Hour, now)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	require.NotEmpty(t, jti)

	claims, err := ParseToken(signed, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestGenerateToken_UniqueJTI(t *testing.T) {
	now := time.Now()

	_, jti1, _, err := GenerateToken("user-1", "access", testSecret, "iss", time.Hour, now)
	require.NoError(t, err)
	_, jti2, _, err := GenerateToken("user-1", "access", testSecret, "iss", time.Hour, now)
	require.NoError(t, err)

	assert.NotEqual(t, jti1, jti2)
}

func TestParseToken_Expired(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)

	signed, _, _, err := GenerateToken("user-1", "access", testSecret, "iss", time.Hour, issuedAt)
	require.NoError(t, err)

	_, err = ParseToken(signed, testSecret)
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	signed, _, _, err := GenerateToken("user-1", "access", testSecret, "iss", time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ParseToken(signed, "a-completely-different-secret-key-32b")
	assert.Error(t, err)
}

func TestParseToken_Tampered(t *testing.T) {
	signed, _, _, err := GenerateToken("user-1", "access", testSecret, "iss", time.Hour, time.Now())
	require.NoError(t, err)

	tampered := signed[:len(signed)-4] + "xxxx"
	_, err = ParseToken(tampered, testSecret)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSecret)
	assert.Error(t, err)
}
