package repositories

import (
	"context"

	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// MealPlanRepositoryFacade manages weekly meal plans and their meals.
type MealPlanRepositoryFacade interface {
	// FindMealPlan retrieves the plan for the given week start, meals
	// included, or nil when the week has no plan yet.
	FindMealPlan(ctx context.Context, userID, weekStart string) (*models.MealPlan, error)

	// SaveMealPlan persists a new, empty plan for a week.
	SaveMealPlan(ctx context.Context, plan models.MealPlan) error

	// SavePlannedMeal appends a meal to a plan and fills its generated ID.
	SavePlannedMeal(ctx context.Context, meal *models.PlannedMeal) error

	// FindPlannedMealByID retrieves one meal on a plan the user owns.
	FindPlannedMealByID(ctx context.Context, userID string, mealID int64) (*models.PlannedMeal, error)

	// UpdatePlannedMeal updates a meal's date, type, servings and notes.
	UpdatePlannedMeal(ctx context.Context, userID string, meal models.PlannedMeal) error

	// DeletePlannedMeal removes one meal; reports whether it existed.
	DeletePlannedMeal(ctx context.Context, userID string, mealID int64) (bool, error)
}
