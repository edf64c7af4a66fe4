package repositories

import (
	"context"

	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*models.User, error)

	// FindUserByEmail retrieves a user by their normalized email.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user models.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user models.User) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// DeleteUser removes the user and every row owned by them, in one
	// transaction, children before parent.
	DeleteUser(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
