package dto

import "github.com/mainmeal/mainmeal_backend/internal/models"

// AddMealRequest schedules a saved recipe onto a plan day.
type AddMealRequest struct {
	RecipeID string  `json:"recipe_id" binding:"required"`
	Date     string  `json:"date" binding:"required"`
	MealType string  `json:"meal_type" binding:"required,mealtype"`
	Servings int     `json:"servings" binding:"omitempty,min=1"`
	Notes    *string `json:"notes"`
}

// UpdateMealRequest patches a planned meal; nil fields are untouched.
type UpdateMealRequest struct {
	Date     *string `json:"date"`
	MealType *string `json:"meal_type" binding:"omitempty,mealtype"`
	Servings *int    `json:"servings" binding:"omitempty,min=1"`
	Notes    *string `json:"notes"`
}

// PlanShoppingListRequest generates a shopping list from a week's plan.
type PlanShoppingListRequest struct {
	ListName string `json:"list_name" binding:"required"`
}

// MealPlanResponse is one week's plan with its meals.
type MealPlanResponse struct {
	Plan *models.MealPlan `json:"plan"`
}
