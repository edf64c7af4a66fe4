package models

import "time"

// ShoppingList is a named list of items, optionally marked completed.
type ShoppingList struct {
	ListID      string         `json:"id" db:"list_id"`
	UserID      string         `json:"-" db:"user_id"`
	Name        string         `json:"name" db:"name"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	CompletedAt *time.Time     `json:"completedAt,omitempty" db:"completed_at"`
	Items       []ShoppingItem `json:"items"`
}

// ShoppingItem is one line on a shopping list.
type ShoppingItem struct {
	ID             int64   `json:"id" db:"id"`
	ListID         string  `json:"-" db:"list_id"`
	Ingredient     string  `json:"ingredient" db:"ingredient"`
	Quantity       *string `json:"quantity,omitempty" db:"quantity"`
	Category       *string `json:"category,omitempty" db:"category"`
	IsChecked      bool    `json:"is_checked" db:"is_checked"`
	SourceRecipeID *string `json:"source_recipe_id,omitempty" db:"source_recipe_id"`
}
