package repositories

import (
	"context"

	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// ShoppingListReader defines read operations for shopping lists
type ShoppingListReader interface {
	// FindShoppingLists lists the user's lists with items, newest first.
	FindShoppingLists(ctx context.Context, userID string) ([]models.ShoppingList, error)

	// FindShoppingListByID retrieves one list with its items.
	FindShoppingListByID(ctx context.Context, userID, listID string) (*models.ShoppingList, error)
}

// ShoppingListWriter defines write operations for shopping lists
type ShoppingListWriter interface {
	// SaveShoppingList persists a list and its initial items transactionally.
	SaveShoppingList(ctx context.Context, list models.ShoppingList) error

	// UpdateShoppingList updates list-level fields such as completed_at.
	UpdateShoppingList(ctx context.Context, list models.ShoppingList) error

	// DeleteShoppingList removes a list and its items; reports existence.
	DeleteShoppingList(ctx context.Context, userID, listID string) (bool, error)

	// SaveShoppingItem appends an item to a list and fills its generated ID.
	SaveShoppingItem(ctx context.Context, item *models.ShoppingItem) error

	// UpdateShoppingItem updates one item on a list the user owns.
	UpdateShoppingItem(ctx context.Context, userID string, item models.ShoppingItem) error

	// DeleteShoppingItem removes one item; reports whether it existed.
	DeleteShoppingItem(ctx context.Context, userID, listID string, itemID int64) (bool, error)
}

// ShoppingRepositoryFacade combines all shopping-related repository interfaces
type ShoppingRepositoryFacade interface {
	ShoppingListReader
	ShoppingListWriter
}
