package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
	"github.com/mainmeal/mainmeal_backend/internal/core/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// fakeMealPlanRepo keeps plans keyed by (user, week start) and meals by ID.
type fakeMealPlanRepo struct {
	plans      map[string]models.MealPlan
	meals      map[int64]models.PlannedMeal
	planOwners map[string]string
	nextMealID int64
}

func newFakeMealPlanRepo() *fakeMealPlanRepo {
	return &fakeMealPlanRepo{
		plans:      make(map[string]models.MealPlan),
		meals:      make(map[int64]models.PlannedMeal),
		planOwners: make(map[string]string),
	}
}

func planKey(userID, weekStart string) string {
	return userID + "|" + weekStart
}

func (f *fakeMealPlanRepo) FindMealPlan(_ context.Context, userID, weekStart string) (*models.MealPlan, error) {
	plan, ok := f.plans[planKey(userID, weekStart)]
	if !ok {
		return nil, nil
	}
	plan.Meals = nil
	for _, meal := range f.meals {
		if meal.PlanID == plan.PlanID {
			plan.Meals = append(plan.Meals, meal)
		}
	}
	return &plan, nil
}

func (f *fakeMealPlanRepo) SaveMealPlan(_ context.Context, plan models.MealPlan) error {
	key := planKey(plan.UserID, plan.WeekStart)
	if _, ok := f.plans[key]; ok {
		// ON CONFLICT DO NOTHING semantics.
		return nil
	}
	f.plans[key] = plan
	f.planOwners[plan.PlanID] = plan.UserID
	return nil
}

func (f *fakeMealPlanRepo) SavePlannedMeal(_ context.Context, meal *models.PlannedMeal) error {
	f.nextMealID++
	meal.ID = f.nextMealID
	f.meals[meal.ID] = *meal
	return nil
}

func (f *fakeMealPlanRepo) FindPlannedMealByID(_ context.Context, userID string, mealID int64) (*models.PlannedMeal, error) {
	meal, ok := f.meals[mealID]
	if !ok || f.planOwners[meal.PlanID] != userID {
		return nil, apperrors.ErrNotFound
	}
	return &meal, nil
}

func (f *fakeMealPlanRepo) UpdatePlannedMeal(_ context.Context, userID string, meal models.PlannedMeal) error {
	stored, ok := f.meals[meal.ID]
	if !ok || f.planOwners[stored.PlanID] != userID {
		return apperrors.ErrNotFound
	}
	f.meals[meal.ID] = meal
	return nil
}

func (f *fakeMealPlanRepo) DeletePlannedMeal(_ context.Context, userID string, mealID int64) (bool, error) {
	meal, ok := f.meals[mealID]
	if !ok || f.planOwners[meal.PlanID] != userID {
		return false, nil
	}
	delete(f.meals, mealID)
	return true, nil
}

// fakeRecipeRepo serves a fixed recipe set.
type fakeRecipeRepo struct {
	recipes map[string]models.SavedRecipe
}

func (f *fakeRecipeRepo) FindSavedRecipes(_ context.Context, userID string, _ bool, _ string) ([]models.SavedRecipe, error) {
	var out []models.SavedRecipe
	for _, r := range f.recipes {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) FindSavedRecipeByID(_ context.Context, userID, recipeID string) (*models.SavedRecipe, error) {
	recipe, ok := f.recipes[recipeID]
	if !ok || recipe.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &recipe, nil
}

func (f *fakeRecipeRepo) FindSavedRecipesByIDs(_ context.Context, userID string, recipeIDs []string) ([]models.SavedRecipe, error) {
	var out []models.SavedRecipe
	for _, id := range recipeIDs {
		if recipe, ok := f.recipes[id]; ok && recipe.UserID == userID {
			out = append(out, recipe)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) SaveRecipe(_ context.Context, recipe models.SavedRecipe) error {
	f.recipes[recipe.RecipeID] = recipe
	return nil
}

func (f *fakeRecipeRepo) UpdateRecipe(_ context.Context, recipe models.SavedRecipe) error {
	f.recipes[recipe.RecipeID] = recipe
	return nil
}

func (f *fakeRecipeRepo) DeleteRecipe(_ context.Context, _, recipeID string) (bool, error) {
	_, ok := f.recipes[recipeID]
	delete(f.recipes, recipeID)
	return ok, nil
}

func newMealPlanFixture() (*fakeMealPlanRepo, *fakeRecipeRepo) {
	recipeRepo := &fakeRecipeRepo{recipes: map[string]models.SavedRecipe{
		"recipe-1": {
			RecipeID: "recipe-1",
			UserID:   "user-1",
			DishName: "Lentil soup",
			Analysis: json.RawMessage(`{"safe_for_family":true}`),
		},
	}}
	return newFakeMealPlanRepo(), recipeRepo
}

func TestMealPlanService_GetWeekPlan_LazyCreate(t *testing.T) {
	planRepo, recipeRepo := newMealPlanFixture()
	svc := services.NewMealPlanService(planRepo, recipeRepo, nil)
	ctx := context.Background()

	// 2026-03-12 is a Thursday; its week starts Monday 2026-03-09.
	plan, err := svc.GetWeekPlan(ctx, "user-1", "2026-03-12")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", plan.WeekStart)
	assert.NotNil(t, plan.Meals)
	assert.Empty(t, plan.Meals)

	// Any date in the same week resolves to the same plan.
	same, err := svc.GetWeekPlan(ctx, "user-1", "2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, plan.PlanID, same.PlanID)

	// A Monday is its own week start.
	monday, err := svc.GetWeekPlan(ctx, "user-1", "2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, plan.PlanID, monday.PlanID)

	// The next Sunday still belongs to this week; the Monday after does not.
	nextWeek, err := svc.GetWeekPlan(ctx, "user-1", "2026-03-16")
	require.NoError(t, err)
	assert.NotEqual(t, plan.PlanID, nextWeek.PlanID)
	assert.Equal(t, "2026-03-16", nextWeek.WeekStart)
}

func TestMealPlanService_GetWeekPlan_BadDate(t *testing.T) {
	planRepo, recipeRepo := newMealPlanFixture()
	svc := services.NewMealPlanService(planRepo, recipeRepo, nil)

	_, err := svc.GetWeekPlan(context.Background(), "user-1", "12/03/2026")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMealPlanService_AddMeal(t *testing.T) {
	planRepo, recipeRepo := newMealPlanFixture()
	svc := services.NewMealPlanService(planRepo, recipeRepo, nil)
	ctx := context.Background()

	meal, err := svc.AddMeal(ctx, "user-1", dto.AddMealRequest{
		RecipeID: "recipe-1",
		Date:     "2026-03-12",
		MealType: "dinner",
	})
	require.NoError(t, err)
	assert.NotZero(t, meal.ID)
	assert.Equal(t, 1, meal.Servings)
	require.NotNil(t, meal.DishName)
	assert.Equal(t, "Lentil soup", *meal.DishName)

	plan, err := svc.GetWeekPlan(ctx, "user-1", "2026-03-12")
	require.NoError(t, err)
	require.Len(t, plan.Meals, 1)
}

func TestMealPlanService_AddMeal_ForeignRecipeRejected(t *testing.T) {
	planRepo, recipeRepo := newMealPlanFixture()
	svc := services.NewMealPlanService(planRepo, recipeRepo, nil)

	_, err := svc.AddMeal(context.Background(), "user-2", dto.AddMealRequest{
		RecipeID: "recipe-1",
		Date:     "2026-03-12",
		MealType: "dinner",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMealPlanService_RemoveMeal(t *testing.T) {
	planRepo, recipeRepo := newMealPlanFixture()
	svc := services.NewMealPlanService(planRepo, recipeRepo, nil)
	ctx := context.Background()

	meal, err := svc.AddMeal(ctx, "user-1", dto.AddMealRequest{
		RecipeID: "recipe-1",
		Date:     "2026-03-12",
		MealType: "lunch",
	})
	require.NoError(t, err)

	// Another user cannot remove it.
	assert.ErrorIs(t, svc.RemoveMeal(ctx, "user-2", meal.ID), apperrors.ErrNotFound)

	require.NoError(t, svc.RemoveMeal(ctx, "user-1", meal.ID))
	assert.ErrorIs(t, svc.RemoveMeal(ctx, "user-1", meal.ID), apperrors.ErrNotFound)
}

func TestMealPlanService_UpdateMeal(t *testing.T) {
	planRepo, recipeRepo := newMealPlanFixture()
	svc := services.NewMealPlanService(planRepo, recipeRepo, nil)
	ctx := context.Background()

	meal, err := svc.AddMeal(ctx, "user-1", dto.AddMealRequest{
		RecipeID: "recipe-1",
		Date:     "2026-03-12",
		MealType: "dinner",
		Servings: 2,
	})
	require.NoError(t, err)

	newType := "lunch"
	newServings := 4
	updated, err := svc.UpdateMeal(ctx, "user-1", meal.ID, dto.UpdateMealRequest{
		MealType: &newType,
		Servings: &newServings,
	})
	require.NoError(t, err)
	assert.Equal(t, models.MealLunch, updated.MealType)
	assert.Equal(t, 4, updated.Servings)
	assert.Equal(t, "2026-03-12", updated.Date)

	badDate := "not-a-date"
	_, err = svc.UpdateMeal(ctx, "user-1", meal.ID, dto.UpdateMealRequest{Date: &badDate})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
