package repositories

import (
	"context"

	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// RecipeReader defines read operations for saved recipes
type RecipeReader interface {
	// FindSavedRecipes lists the user's recipes, newest first. favoritesOnly
	// narrows to favorites; tag narrows to recipes carrying that tag.
	FindSavedRecipes(ctx context.Context, userID string, favoritesOnly bool, tag string) ([]models.SavedRecipe, error)

	// FindSavedRecipeByID retrieves one recipe owned by userID.
	FindSavedRecipeByID(ctx context.Context, userID, recipeID string) (*models.SavedRecipe, error)

	// FindSavedRecipesByIDs retrieves the subset of ids owned by userID.
	FindSavedRecipesByIDs(ctx context.Context, userID string, recipeIDs []string) ([]models.SavedRecipe, error)
}

// RecipeWriter defines write operations for saved recipes
type RecipeWriter interface {
	// SaveRecipe persists a newly analyzed recipe.
	SaveRecipe(ctx context.Context, recipe models.SavedRecipe) error

	// UpdateRecipe updates a recipe's favorite flag, notes and tags.
	UpdateRecipe(ctx context.Context, recipe models.SavedRecipe) error

	// DeleteRecipe removes one recipe; reports whether it existed.
	DeleteRecipe(ctx context.Context, userID, recipeID string) (bool, error)
}

// RecipeRepositoryFacade combines all recipe-related repository interfaces
type RecipeRepositoryFacade interface {
	RecipeReader
	RecipeWriter
}
