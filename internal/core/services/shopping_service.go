package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

type shoppingService struct {
	shoppingRepo portsrepo.ShoppingRepositoryFacade
	recipeRepo   portsrepo.RecipeRepositoryFacade
	aiService    portssvc.AISvcFacade
}

// NewShoppingService creates a new instance of shoppingService.
func NewShoppingService(shoppingRepo portsrepo.ShoppingRepositoryFacade, recipeRepo portsrepo.RecipeRepositoryFacade, aiService portssvc.AISvcFacade) portssvc.ShoppingSvcFacade {
	return &shoppingService{
		shoppingRepo: shoppingRepo,
		recipeRepo:   recipeRepo,
		aiService:    aiService,
	}
}

var _ portssvc.ShoppingSvcFacade = (*shoppingService)(nil)

func (s *shoppingService) CreateList(ctx context.Context, userID string, req dto.CreateShoppingListRequest) (*models.ShoppingList, error) {
	list := models.ShoppingList{
		ListID:    uuid.NewString(),
		UserID:    userID,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}
	for _, item := range req.Items {
		list.Items = append(list.Items, models.ShoppingItem{
			ListID:         list.ListID,
			Ingredient:     item.Ingredient,
			Quantity:       item.Quantity,
			Category:       item.Category,
			SourceRecipeID: item.SourceRecipeID,
		})
	}
	if err := s.shoppingRepo.SaveShoppingList(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}
	return s.shoppingRepo.FindShoppingListByID(ctx, userID, list.ListID)
}

// GenerateFromRecipes extracts a consolidated ingredient list from the
// selected recipes and saves it as a new shopping list. Duplicate
// ingredients across recipes are merged by the extraction step.
func (s *shoppingService) GenerateFromRecipes(ctx context.Context, userID string, req dto.GenerateShoppingListRequest) (*models.ShoppingList, error) {
	recipes, err := s.recipeRepo.FindSavedRecipesByIDs(ctx, userID, req.RecipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes for shopping list: %w", err)
	}
	if len(recipes) == 0 {
		return nil, apperrors.ErrNotFound
	}

	texts := make([]string, 0, len(recipes))
	for _, rec := range recipes {
		text := rec.DishName
		if rec.RecipeText != nil && *rec.RecipeText != "" {
			text = *rec.RecipeText
		}
		texts = append(texts, text)
	}

	ingredients, err := s.aiService.ExtractIngredients(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to extract ingredients: %w", err)
	}

	list := models.ShoppingList{
		ListID:    uuid.NewString(),
		UserID:    userID,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}
	sourceID := strings.Join(req.RecipeIDs, ",")
	for _, ing := range ingredients {
		list.Items = append(list.Items, models.ShoppingItem{
			ListID:         list.ListID,
			Ingredient:     ing.Ingredient,
			Quantity:       ing.Quantity,
			Category:       ing.Category,
			SourceRecipeID: &sourceID,
		})
	}

	if err := s.shoppingRepo.SaveShoppingList(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to save generated shopping list: %w", err)
	}
	return s.shoppingRepo.FindShoppingListByID(ctx, userID, list.ListID)
}

func (s *shoppingService) ListLists(ctx context.Context, userID string) ([]models.ShoppingList, error) {
	lists, err := s.shoppingRepo.FindShoppingLists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}
	if lists == nil {
		lists = []models.ShoppingList{}
	}
	return lists, nil
}

func (s *shoppingService) GetList(ctx context.Context, userID, listID string) (*models.ShoppingList, error) {
	return s.shoppingRepo.FindShoppingListByID(ctx, userID, listID)
}

func (s *shoppingService) CompleteList(ctx context.Context, userID, listID string) (*models.ShoppingList, error) {
	list, err := s.shoppingRepo.FindShoppingListByID(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	list.CompletedAt = &now
	if err := s.shoppingRepo.UpdateShoppingList(ctx, *list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *shoppingService) DeleteList(ctx context.Context, userID, listID string) error {
	existed, err := s.shoppingRepo.DeleteShoppingList(ctx, userID, listID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	if !existed {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *shoppingService) AddItem(ctx context.Context, userID, listID string, req dto.ShoppingItemRequest) (*models.ShoppingItem, error) {
	// Confirm ownership before touching items.
	if _, err := s.shoppingRepo.FindShoppingListByID(ctx, userID, listID); err != nil {
		return nil, err
	}
	item := models.ShoppingItem{
		ListID:         listID,
		Ingredient:     req.Ingredient,
		Quantity:       req.Quantity,
		Category:       req.Category,
		SourceRecipeID: req.SourceRecipeID,
	}
	if err := s.shoppingRepo.SaveShoppingItem(ctx, &item); err != nil {
		return nil, fmt.Errorf("failed to add shopping item: %w", err)
	}
	return &item, nil
}

func (s *shoppingService) UpdateItem(ctx context.Context, userID, listID string, itemID int64, req dto.UpdateShoppingItemRequest) (*models.ShoppingItem, error) {
	list, err := s.shoppingRepo.FindShoppingListByID(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	var item *models.ShoppingItem
	for i := range list.Items {
		if list.Items[i].ID == itemID {
			item = &list.Items[i]
			break
		}
	}
	if item == nil {
		return nil, apperrors.ErrNotFound
	}

	if req.IsChecked != nil {
		item.IsChecked = *req.IsChecked
	}
	if req.Quantity != nil {
		item.Quantity = req.Quantity
	}
	if req.Category != nil {
		item.Category = req.Category
	}

	if err := s.shoppingRepo.UpdateShoppingItem(ctx, userID, *item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *shoppingService) DeleteItem(ctx context.Context, userID, listID string, itemID int64) error {
	existed, err := s.shoppingRepo.DeleteShoppingItem(ctx, userID, listID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping item: %w", err)
	}
	if !existed {
		return apperrors.ErrNotFound
	}
	return nil
}
