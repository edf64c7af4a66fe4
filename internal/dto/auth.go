package dto

import (
	"time"

	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest is the payload for email/password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries the refresh token being traded in for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// GoogleLoginRequest carries a Google-issued ID token for sign-in.
type GoogleLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// UpdateProfileRequest updates name and/or email; nil fields are untouched.
type UpdateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// ChangePasswordRequest rotates the account password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// UserResponse is the public view of a user (never includes the credential).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenPair is an access/refresh token pair minted together.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse is returned from register, login, refresh and Google sign-in.
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
}

// ToUserResponse maps a user row to its public view.
func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.UserID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewAuthResponse assembles the standard auth payload.
func NewAuthResponse(u *models.User, pair TokenPair) AuthResponse {
	return AuthResponse{
		User:         ToUserResponse(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	}
}
