package dto

import "github.com/mainmeal/mainmeal_backend/internal/models"

// ShoppingItemRequest is one line item on a shopping list.
type ShoppingItemRequest struct {
	Ingredient     string  `json:"ingredient" binding:"required"`
	Quantity       *string `json:"quantity"`
	Category       *string `json:"category"`
	SourceRecipeID *string `json:"source_recipe_id"`
}

// CreateShoppingListRequest creates a list, optionally pre-populated.
type CreateShoppingListRequest struct {
	Name  string                `json:"name" binding:"required"`
	Items []ShoppingItemRequest `json:"items" binding:"dive"`
}

// GenerateShoppingListRequest builds a list from saved recipes, merging
// duplicate ingredients across the selected recipes.
type GenerateShoppingListRequest struct {
	Name      string   `json:"name" binding:"required"`
	RecipeIDs []string `json:"recipe_ids" binding:"required,min=1"`
}

// UpdateShoppingItemRequest patches one item; nil fields are untouched.
type UpdateShoppingItemRequest struct {
	IsChecked *bool   `json:"is_checked"`
	Quantity  *string `json:"quantity"`
	Category  *string `json:"category"`
}

// ShoppingListsResponse lists the user's shopping lists, newest first.
type ShoppingListsResponse struct {
	Lists []models.ShoppingList `json:"lists"`
	Total int                   `json:"total"`
}
