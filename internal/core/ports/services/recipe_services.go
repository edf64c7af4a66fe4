package services

import (
	"context"

	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// RecipeSvcFacade manages the user's saved recipe collection.
type RecipeSvcFacade interface {
	// SaveRecipe stores an analyzed recipe.
	SaveRecipe(ctx context.Context, userID string, req dto.SaveRecipeRequest) (*models.SavedRecipe, error)

	// ListRecipes returns saved recipes, optionally filtered.
	ListRecipes(ctx context.Context, userID string, favoritesOnly bool, tag string) ([]models.SavedRecipe, error)

	// GetRecipe retrieves one saved recipe.
	GetRecipe(ctx context.Context, userID, recipeID string) (*models.SavedRecipe, error)

	// UpdateRecipe patches favorite flag, notes and tags.
	UpdateRecipe(ctx context.Context, userID, recipeID string, req dto.UpdateRecipeRequest) (*models.SavedRecipe, error)

	// DeleteRecipe removes one saved recipe.
	DeleteRecipe(ctx context.Context, userID, recipeID string) error
}
