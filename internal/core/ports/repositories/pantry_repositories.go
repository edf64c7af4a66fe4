package repositories

import (
	"context"

	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// PantryRepositoryFacade manages the user's pantry inventory.
type PantryRepositoryFacade interface {
	// FindPantryItems lists the user's pantry, newest first.
	FindPantryItems(ctx context.Context, userID string) ([]models.PantryItem, error)

	// SavePantryItem inserts a new item and fills in its generated ID.
	SavePantryItem(ctx context.Context, item *models.PantryItem) error

	// DeletePantryItem removes one item; reports whether it existed.
	DeletePantryItem(ctx context.Context, userID string, itemID int64) (bool, error)

	// ClearPantry removes every item the user has.
	ClearPantry(ctx context.Context, userID string) (int64, error)
}
