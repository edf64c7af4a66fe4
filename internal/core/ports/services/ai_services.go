package services

import (
	"context"

	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// AISvcFacade wraps the language model behind typed operations. Every method
// sends one prompt and parses the model's JSON reply into the response type.
type AISvcFacade interface {
	// AnalyzeRecipe produces a per-member safety verdict for recipe text.
	AnalyzeRecipe(ctx context.Context, recipeText string, family []models.FamilyMember) (*dto.RecipeAnalysis, error)

	// AnalyzeIngredients checks a raw ingredient list against the family.
	AnalyzeIngredients(ctx context.Context, ingredients []string, family []models.FamilyMember) (*dto.IngredientAnalysis, error)

	// AnalyzeIngredientImage reads a product label photo and checks the
	// ingredients it finds against the family.
	AnalyzeIngredientImage(ctx context.Context, imageData []byte, mimeType string, family []models.FamilyMember) (*dto.IngredientAnalysis, error)

	// SuggestRecipes proposes dishes cookable from the available ingredients.
	SuggestRecipes(ctx context.Context, ingredients []string, family []models.FamilyMember) (*dto.RecipeSuggestions, error)

	// ExtractIngredients pulls a consolidated ingredient list from recipe
	// texts, merging duplicates.
	ExtractIngredients(ctx context.Context, recipes []string) ([]dto.ExtractedIngredient, error)
}
