package dto

import (
	"encoding/json"

	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// SaveRecipeRequest stores an analyzed recipe in the user's collection.
type SaveRecipeRequest struct {
	DishName   string          `json:"dish_name" binding:"required"`
	RecipeText *string         `json:"recipe_text"`
	Analysis   json.RawMessage `json:"analysis" binding:"required"`
	IsFavorite bool            `json:"is_favorite"`
	Notes      *string         `json:"notes"`
	Tags       []string        `json:"tags"`
}

// UpdateRecipeRequest patches a saved recipe; nil fields are untouched.
type UpdateRecipeRequest struct {
	IsFavorite *bool     `json:"is_favorite"`
	Notes      *string   `json:"notes"`
	Tags       *[]string `json:"tags"`
}

// SavedRecipesResponse is a page of the user's saved recipes.
type SavedRecipesResponse struct {
	Recipes []models.SavedRecipe `json:"recipes"`
	Total   int                  `json:"total"`
}
