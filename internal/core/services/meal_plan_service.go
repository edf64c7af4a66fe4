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

const dateLayout = "2006-01-02"

type mealPlanService struct {
	mealPlanRepo portsrepo.MealPlanRepositoryFacade
	recipeRepo   portsrepo.RecipeRepositoryFacade
	shoppingSvc  portssvc.ShoppingSvcFacade
}

// NewMealPlanService creates a new instance of mealPlanService.
func NewMealPlanService(mealPlanRepo portsrepo.MealPlanRepositoryFacade, recipeRepo portsrepo.RecipeRepositoryFacade, shoppingSvc portssvc.ShoppingSvcFacade) portssvc.MealPlanSvcFacade {
	return &mealPlanService{
		mealPlanRepo: mealPlanRepo,
		recipeRepo:   recipeRepo,
		shoppingSvc:  shoppingSvc,
	}
}

var _ portssvc.MealPlanSvcFacade = (*mealPlanService)(nil)

// weekStartFor maps any date to the Monday of its week, which is the key a
// plan is stored under.
func weekStartFor(dateStr string) (string, error) {
	day, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return "", apperrors.ErrValidation
	}
	offset := (int(day.Weekday()) + 6) % 7 // Monday is 0
	return day.AddDate(0, 0, -offset).Format(dateLayout), nil
}

func (s *mealPlanService) GetWeekPlan(ctx context.Context, userID, dateStr string) (*models.MealPlan, error) {
	if dateStr == "" {
		dateStr = time.Now().UTC().Format(dateLayout)
	}
	weekStart, err := weekStartFor(dateStr)
	if err != nil {
		return nil, err
	}

	plan, err := s.mealPlanRepo.FindMealPlan(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		plan = &models.MealPlan{
			PlanID:    uuid.NewString(),
			UserID:    userID,
			WeekStart: weekStart,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.mealPlanRepo.SaveMealPlan(ctx, *plan); err != nil {
			return nil, err
		}
		// A concurrent request may have created the week first; reload so
		// both callers see the same plan row.
		plan, err = s.mealPlanRepo.FindMealPlan(ctx, userID, weekStart)
		if err != nil {
			return nil, err
		}
	}
	if plan.Meals == nil {
		plan.Meals = []models.PlannedMeal{}
	}
	return plan, nil
}

func (s *mealPlanService) AddMeal(ctx context.Context, userID string, req dto.AddMealRequest) (*models.PlannedMeal, error) {
	// The recipe must exist and belong to the user.
	recipe, err := s.recipeRepo.FindSavedRecipeByID(ctx, userID, req.RecipeID)
	if err != nil {
		return nil, err
	}

	plan, err := s.GetWeekPlan(ctx, userID, req.Date)
	if err != nil {
		return nil, err
	}

	servings := req.Servings
	if servings == 0 {
		servings = 1
	}
	meal := models.PlannedMeal{
		PlanID:   plan.PlanID,
		RecipeID: &recipe.RecipeID,
		Date:     req.Date,
		MealType: models.MealType(req.MealType),
		Servings: servings,
		Notes:    req.Notes,
	}
	if err := s.mealPlanRepo.SavePlannedMeal(ctx, &meal); err != nil {
		return nil, err
	}
	meal.DishName = &recipe.DishName
	meal.Analysis = recipe.Analysis
	return &meal, nil
}

func (s *mealPlanService) UpdateMeal(ctx context.Context, userID string, mealID int64, req dto.UpdateMealRequest) (*models.PlannedMeal, error) {
	meal, err := s.mealPlanRepo.FindPlannedMealByID(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		if _, err := time.Parse(dateLayout, *req.Date); err != nil {
			return nil, apperrors.ErrValidation
		}
		meal.Date = *req.Date
	}
	if req.MealType != nil {
		meal.MealType = models.MealType(*req.MealType)
	}
	if req.Servings != nil {
		meal.Servings = *req.Servings
	}
	if req.Notes != nil {
		meal.Notes = req.Notes
	}

	if err := s.mealPlanRepo.UpdatePlannedMeal(ctx, userID, *meal); err != nil {
		return nil, err
	}
	return meal, nil
}

func (s *mealPlanService) RemoveMeal(ctx context.Context, userID string, mealID int64) error {
	existed, err := s.mealPlanRepo.DeletePlannedMeal(ctx, userID, mealID)
	if err != nil {
		return err
	}
	if !existed {
		return apperrors.ErrNotFound
	}
	return nil
}

// GenerateShoppingList builds a shopping list from the distinct recipes
// planned for the week containing dateStr.
func (s *mealPlanService) GenerateShoppingList(ctx context.Context, userID, dateStr string, req dto.PlanShoppingListRequest) (*models.ShoppingList, error) {
	plan, err := s.GetWeekPlan(ctx, userID, dateStr)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var recipeIDs []string
	for _, meal := range plan.Meals {
		if meal.RecipeID == nil || seen[*meal.RecipeID] {
			continue
		}
		seen[*meal.RecipeID] = true
		recipeIDs = append(recipeIDs, *meal.RecipeID)
	}
	if len(recipeIDs) == 0 {
		return nil, fmt.Errorf("no planned recipes in week %s: %w", plan.WeekStart, apperrors.ErrNotFound)
	}

	return s.shoppingSvc.GenerateFromRecipes(ctx, userID, dto.GenerateShoppingListRequest{
		Name:      req.ListName,
		RecipeIDs: recipeIDs,
	})
}
