package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

type recipeService struct {
	recipeRepo portsrepo.RecipeRepositoryFacade
}

// NewRecipeService creates a new instance of recipeService.
func NewRecipeService(recipeRepo portsrepo.RecipeRepositoryFacade) portssvc.RecipeSvcFacade {
	return &recipeService{recipeRepo: recipeRepo}
}

var _ portssvc.RecipeSvcFacade = (*recipeService)(nil)

func (s *recipeService) SaveRecipe(ctx context.Context, userID string, req dto.SaveRecipeRequest) (*models.SavedRecipe, error) {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	recipe := models.SavedRecipe{
		RecipeID:   uuid.NewString(),
		UserID:     userID,
		DishName:   req.DishName,
		RecipeText: req.RecipeText,
		Analysis:   req.Analysis,
		IsFavorite: req.IsFavorite,
		Notes:      req.Notes,
		Tags:       tags,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.recipeRepo.SaveRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	return &recipe, nil
}

func (s *recipeService) ListRecipes(ctx context.Context, userID string, favoritesOnly bool, tag string) ([]models.SavedRecipe, error) {
	recipes, err := s.recipeRepo.FindSavedRecipes(ctx, userID, favoritesOnly, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	if recipes == nil {
		recipes = []models.SavedRecipe{}
	}
	return recipes, nil
}

func (s *recipeService) GetRecipe(ctx context.Context, userID, recipeID string) (*models.SavedRecipe, error) {
	return s.recipeRepo.FindSavedRecipeByID(ctx, userID, recipeID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, userID, recipeID string, req dto.UpdateRecipeRequest) (*models.SavedRecipe, error) {
	recipe, err := s.recipeRepo.FindSavedRecipeByID(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if req.IsFavorite != nil {
		recipe.IsFavorite = *req.IsFavorite
	}
	if req.Notes != nil {
		recipe.Notes = req.Notes
	}
	if req.Tags != nil {
		recipe.Tags = *req.Tags
	}

	if err := s.recipeRepo.UpdateRecipe(ctx, *recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, userID, recipeID string) error {
	existed, err := s.recipeRepo.DeleteRecipe(ctx, userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if !existed {
		return apperrors.ErrNotFound
	}
	return nil
}
