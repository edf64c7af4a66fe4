package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

type PgxMealPlanRepository struct {
	BaseRepository
}

func newPgxMealPlanRepository(db *pgxpool.Pool) portsrepo.MealPlanRepositoryFacade {
	return &PgxMealPlanRepository{BaseRepository{Pool: db}}
}

// Ensure PgxMealPlanRepository implements portsrepo.MealPlanRepositoryFacade
var _ portsrepo.MealPlanRepositoryFacade = (*PgxMealPlanRepository)(nil)

func (r *PgxMealPlanRepository) FindMealPlan(ctx context.Context, userID, weekStart string) (*models.MealPlan, error) {
	query := `
		SELECT plan_id, user_id, week_start, created_at
		FROM meal_plans
		WHERE user_id = $1 AND week_start = $2;
	`
	var plan models.MealPlan
	err := r.Pool.QueryRow(ctx, query, userID, weekStart).Scan(
		&plan.PlanID, &plan.UserID, &plan.WeekStart, &plan.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find meal plan: %w", err)
	}

	meals, err := r.findMeals(ctx, plan.PlanID)
	if err != nil {
		return nil, err
	}
	plan.Meals = meals
	return &plan, nil
}

// findMeals joins saved_recipes so each meal carries the dish name and the
// stored analysis without a second round trip per meal.
func (r *PgxMealPlanRepository) findMeals(ctx context.Context, planID string) ([]models.PlannedMeal, error) {
	query := `
		SELECT pm.id, pm.plan_id, pm.recipe_id, pm.date, pm.meal_type, pm.servings, pm.notes,
		       sr.dish_name, sr.analysis
		FROM planned_meals pm
		LEFT JOIN saved_recipes sr ON sr.recipe_id = pm.recipe_id
		WHERE pm.plan_id = $1
		ORDER BY pm.date, pm.meal_type, pm.id;
	`
	rows, err := r.Pool.Query(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query planned meals: %w", err)
	}
	defer rows.Close()

	var meals []models.PlannedMeal
	for rows.Next() {
		var m models.PlannedMeal
		if err := rows.Scan(&m.ID, &m.PlanID, &m.RecipeID, &m.Date, &m.MealType, &m.Servings, &m.Notes, &m.DishName, &m.Analysis); err != nil {
			return nil, fmt.Errorf("failed to scan planned meal: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating planned meals: %w", err)
	}
	return meals, nil
}

func (r *PgxMealPlanRepository) SaveMealPlan(ctx context.Context, plan models.MealPlan) error {
	query := `
		INSERT INTO meal_plans (plan_id, user_id, week_start, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, week_start) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query, plan.PlanID, plan.UserID, plan.WeekStart, plan.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save meal plan: %w", err)
	}
	return nil
}

func (r *PgxMealPlanRepository) SavePlannedMeal(ctx context.Context, meal *models.PlannedMeal) error {
	query := `
		INSERT INTO planned_meals (plan_id, recipe_id, date, meal_type, servings, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		meal.PlanID, meal.RecipeID, meal.Date, meal.MealType, meal.Servings, meal.Notes,
	).Scan(&meal.ID)
	if err != nil {
		return fmt.Errorf("failed to save planned meal: %w", err)
	}
	return nil
}

func (r *PgxMealPlanRepository) FindPlannedMealByID(ctx context.Context, userID string, mealID int64) (*models.PlannedMeal, error) {
	query := `
		SELECT pm.id, pm.plan_id, pm.recipe_id, pm.date, pm.meal_type, pm.servings, pm.notes,
		       sr.dish_name, sr.analysis
		FROM planned_meals pm
		JOIN meal_plans mp ON mp.plan_id = pm.plan_id
		LEFT JOIN saved_recipes sr ON sr.recipe_id = pm.recipe_id
		WHERE mp.user_id = $1 AND pm.id = $2;
	`
	var m models.PlannedMeal
	err := r.Pool.QueryRow(ctx, query, userID, mealID).Scan(
		&m.ID, &m.PlanID, &m.RecipeID, &m.Date, &m.MealType, &m.Servings, &m.Notes, &m.DishName, &m.Analysis,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find planned meal %d: %w", mealID, err)
	}
	return &m, nil
}

func (r *PgxMealPlanRepository) UpdatePlannedMeal(ctx context.Context, userID string, meal models.PlannedMeal) error {
	query := `
		UPDATE planned_meals pm
		SET date = $3, meal_type = $4, servings = $5, notes = $6
		FROM meal_plans mp
		WHERE mp.plan_id = pm.plan_id AND mp.user_id = $1 AND pm.id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, meal.ID, meal.Date, meal.MealType, meal.Servings, meal.Notes)
	if err != nil {
		return fmt.Errorf("failed to update planned meal %d: %w", meal.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxMealPlanRepository) DeletePlannedMeal(ctx context.Context, userID string, mealID int64) (bool, error) {
	query := `
		DELETE FROM planned_meals pm
		USING meal_plans mp
		WHERE mp.plan_id = pm.plan_id AND mp.user_id = $1 AND pm.id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, mealID)
	if err != nil {
		return false, fmt.Errorf("failed to delete planned meal %d: %w", mealID, err)
	}
	return tag.RowsAffected() > 0, nil
}
