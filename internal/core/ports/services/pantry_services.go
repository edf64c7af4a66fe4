package services

import (
	"context"

	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// PantrySvcFacade manages the user's pantry inventory.
type PantrySvcFacade interface {
	// ListItems returns the user's pantry, newest first.
	ListItems(ctx context.Context, userID string) ([]models.PantryItem, error)

	// AddItem adds one item to the pantry.
	AddItem(ctx context.Context, userID string, req dto.CreatePantryItemRequest) (*models.PantryItem, error)

	// RemoveItem deletes one item from the pantry.
	RemoveItem(ctx context.Context, userID string, itemID int64) error

	// ClearPantry deletes every item the user has.
	ClearPantry(ctx context.Context, userID string) error
}
