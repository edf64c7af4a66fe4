package models

import (
	"encoding/json"
	"time"
)

// MealType slots a planned meal into the day.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealPlan is one user's plan for a week, keyed by the Monday of that week.
// WeekStart and PlannedMeal.Date use the YYYY-MM-DD wire format.
type MealPlan struct {
	PlanID    string        `json:"id" db:"plan_id"`
	UserID    string        `json:"-" db:"user_id"`
	WeekStart string        `json:"week_start" db:"week_start"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	Meals     []PlannedMeal `json:"meals"`
}

// PlannedMeal is a single slot in a meal plan. DishName and Analysis are
// denormalized from the linked recipe when one is attached.
type PlannedMeal struct {
	ID       int64    `json:"id" db:"id"`
	PlanID   string   `json:"plan_id" db:"plan_id"`
	RecipeID *string  `json:"recipe_id,omitempty" db:"recipe_id"`
	Date     string   `json:"date" db:"meal_date"`
	MealType MealType `json:"meal_type" db:"meal_type"`
	Servings int      `json:"servings" db:"servings"`
	Notes    *string  `json:"notes,omitempty" db:"notes"`

	DishName *string         `json:"dish_name,omitempty" db:"-"`
	Analysis json.RawMessage `json:"analysis,omitempty" db:"-"`
}
