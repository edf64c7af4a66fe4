package services

import (
	"context"

	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// MealPlanSvcFacade manages weekly meal plans. Weeks are keyed by the Monday
// of the week a date falls in; any date resolves to its week's plan.
type MealPlanSvcFacade interface {
	// GetWeekPlan returns the plan for the week containing dateStr, creating
	// an empty plan lazily when the week has none.
	GetWeekPlan(ctx context.Context, userID, dateStr string) (*models.MealPlan, error)

	// AddMeal schedules a saved recipe onto the plan for the meal's date.
	AddMeal(ctx context.Context, userID string, req dto.AddMealRequest) (*models.PlannedMeal, error)

	// UpdateMeal patches a planned meal's date, type, servings or notes.
	UpdateMeal(ctx context.Context, userID string, mealID int64, req dto.UpdateMealRequest) (*models.PlannedMeal, error)

	// RemoveMeal deletes one meal from its plan.
	RemoveMeal(ctx context.Context, userID string, mealID int64) error

	// GenerateShoppingList builds a shopping list from the week's planned
	// recipes, merging duplicate ingredients.
	GenerateShoppingList(ctx context.Context, userID, dateStr string, req dto.PlanShoppingListRequest) (*models.ShoppingList, error)
}
