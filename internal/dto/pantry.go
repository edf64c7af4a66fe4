package dto

import "github.com/mainmeal/mainmeal_backend/internal/models"

// CreatePantryItemRequest adds one item to the user's pantry.
type CreatePantryItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Category *string `json:"category"`
}

// PantryResponse lists everything currently in the pantry.
type PantryResponse struct {
	Items []models.PantryItem `json:"items"`
	Total int                 `json:"total"`
}
