package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifiesCorrectPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPasswordHash("s3cret-password", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestHashPassword_LongInputTruncated(t *testing.T) {
	long := strings.Repeat("a", 100)

	hash, err := HashPassword(long)
	require.NoError(t, err)

	// bcrypt only sees the first 72 bytes, so both must verify.
	assert.True(t, CheckPasswordHash(long, hash))
	assert.True(t, CheckPasswordHash(strings.Repeat("a", 72), hash))
}

func TestCheckPasswordHash_InvalidHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("anything", "not-a-bcrypt-hash"))
}
