package services

import (
	"context"

	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// ShoppingSvcFacade manages shopping lists and their items.
type ShoppingSvcFacade interface {
	// CreateList creates a list, optionally pre-populated with items.
	CreateList(ctx context.Context, userID string, req dto.CreateShoppingListRequest) (*models.ShoppingList, error)

	// GenerateFromRecipes builds a list from saved recipes, merging duplicate
	// ingredients across them.
	GenerateFromRecipes(ctx context.Context, userID string, req dto.GenerateShoppingListRequest) (*models.ShoppingList, error)

	// ListLists returns the user's lists with items, newest first.
	ListLists(ctx context.Context, userID string) ([]models.ShoppingList, error)

	// GetList retrieves one list with its items.
	GetList(ctx context.Context, userID, listID string) (*models.ShoppingList, error)

	// CompleteList marks a list completed at the current time.
	CompleteList(ctx context.Context, userID, listID string) (*models.ShoppingList, error)

	// DeleteList removes a list and its items.
	DeleteList(ctx context.Context, userID, listID string) error

	// AddItem appends one item to a list.
	AddItem(ctx context.Context, userID, listID string, req dto.ShoppingItemRequest) (*models.ShoppingItem, error)

	// UpdateItem patches one item on a list.
	UpdateItem(ctx context.Context, userID, listID string, itemID int64, req dto.UpdateShoppingItemRequest) (*models.ShoppingItem, error)

	// DeleteItem removes one item from a list.
	DeleteItem(ctx context.Context, userID, listID string, itemID int64) error
}
