package models

import "time"

// Token type discriminators carried in the JWT "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// RefreshToken is the server-side record of an issued refresh token, keyed by
// its jti. The row is the source of truth for "has this token been consumed or
// revoked" - a valid signature alone is not sufficient.
type RefreshToken struct {
	JTI       string    `db:"jti"`
	UserID    string    `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// BlacklistedToken marks a jti as permanently invalid. ExpiresAt is copied
// from the original token and only used to know when the marker itself can be
// garbage-collected.
type BlacklistedToken struct {
	JTI           string    `db:"jti"`
	TokenType     string    `db:"token_type"`
	ExpiresAt     time.Time `db:"expires_at"`
	BlacklistedAt time.Time `db:"blacklisted_at"`
}
