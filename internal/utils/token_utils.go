package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims is the claim set carried by both access and refresh tokens.
// TokenType discriminates the two so one can never be presented as the other;
// the jti lives in RegisteredClaims.ID.
type AuthClaims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// GenerateToken mints a signed HS256 token of the given type for userID and
// returns the compact token string, its jti, and its expiry.
func GenerateToken(userID, tokenType, secret, issuer string, ttl time.Duration, now time.Time) (string, string, time.Time, error) {
	jti := uuid.NewString()
	expiresAt := now.Add(ttl)
	claims := AuthClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", "", time.Time{}, err
	}
	return signed, jti, expiresAt, nil
}

// ParseToken verifies the signature and standard claims (exp, iat) of a token
// string and returns its claims. The signing method is pinned to HMAC to block
// alg-substitution tokens.
func ParseToken(tokenString, secret string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}
