package services

import (
	"context"

	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a new account with a hashed password.
	CreateUser(ctx context.Context, req dto.RegisterRequest) (*models.User, error)

	// UpdateProfile updates name and/or email for the user.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*models.User, error)

	// ChangePassword verifies the current password and stores the new hash.
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser removes the account and everything it owns.
	DeleteUser(ctx context.Context, userID string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}
