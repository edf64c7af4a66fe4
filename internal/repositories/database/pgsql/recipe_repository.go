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

type PgxRecipeRepository struct {
	BaseRepository
}

func newPgxRecipeRepository(db *pgxpool.Pool) portsrepo.RecipeRepositoryFacade {
	return &PgxRecipeRepository{BaseRepository{Pool: db}}
}

// Ensure PgxRecipeRepository implements portsrepo.RecipeRepositoryFacade
var _ portsrepo.RecipeRepositoryFacade = (*PgxRecipeRepository)(nil)

const savedRecipeColumns = `recipe_id, user_id, dish_name, recipe_text, analysis, is_favorite, notes, tags, created_at`

func scanSavedRecipe(row pgx.Row) (*models.SavedRecipe, error) {
	var rec models.SavedRecipe
	err := row.Scan(
		&rec.RecipeID, &rec.UserID, &rec.DishName, &rec.RecipeText,
		&rec.Analysis, &rec.IsFavorite, &rec.Notes, &rec.Tags, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *PgxRecipeRepository) FindSavedRecipes(ctx context.Context, userID string, favoritesOnly bool, tag string) ([]models.SavedRecipe, error) {
	query := `SELECT ` + savedRecipeColumns + ` FROM saved_recipes WHERE user_id = $1`
	args := []any{userID}
	if favoritesOnly {
		query += ` AND is_favorite`
	}
	if tag != "" {
		args = append(args, tag)
		query += fmt.Sprintf(` AND $%d = ANY(tags)`, len(args))
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved recipes: %w", err)
	}
	defer rows.Close()

	var recipes []models.SavedRecipe
	for rows.Next() {
		rec, err := scanSavedRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved recipe: %w", err)
		}
		recipes = append(recipes, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating saved recipes: %w", err)
	}
	return recipes, nil
}

func (r *PgxRecipeRepository) FindSavedRecipeByID(ctx context.Context, userID, recipeID string) (*models.SavedRecipe, error) {
	query := `SELECT ` + savedRecipeColumns + ` FROM saved_recipes WHERE user_id = $1 AND recipe_id = $2;`
	rec, err := scanSavedRecipe(r.Pool.QueryRow(ctx, query, userID, recipeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find saved recipe %s: %w", recipeID, err)
	}
	return rec, nil
}

func (r *PgxRecipeRepository) FindSavedRecipesByIDs(ctx context.Context, userID string, recipeIDs []string) ([]models.SavedRecipe, error) {
	query := `SELECT ` + savedRecipeColumns + ` FROM saved_recipes WHERE user_id = $1 AND recipe_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, userID, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved recipes by ids: %w", err)
	}
	defer rows.Close()

	var recipes []models.SavedRecipe
	for rows.Next() {
		rec, err := scanSavedRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved recipe: %w", err)
		}
		recipes = append(recipes, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating saved recipes: %w", err)
	}
	return recipes, nil
}

func (r *PgxRecipeRepository) SaveRecipe(ctx context.Context, recipe models.SavedRecipe) error {
	query := `
		INSERT INTO saved_recipes (recipe_id, user_id, dish_name, recipe_text, analysis, is_favorite, notes, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		recipe.RecipeID, recipe.UserID, recipe.DishName, recipe.RecipeText,
		recipe.Analysis, recipe.IsFavorite, recipe.Notes, recipe.Tags, recipe.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	return nil
}

func (r *PgxRecipeRepository) UpdateRecipe(ctx context.Context, recipe models.SavedRecipe) error {
	query := `
		UPDATE saved_recipes
		SET is_favorite = $3, notes = $4, tags = $5
		WHERE user_id = $1 AND recipe_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		recipe.UserID, recipe.RecipeID, recipe.IsFavorite, recipe.Notes, recipe.Tags,
	)
	if err != nil {
		return fmt.Errorf("failed to update saved recipe %s: %w", recipe.RecipeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRecipeRepository) DeleteRecipe(ctx context.Context, userID, recipeID string) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM saved_recipes WHERE user_id = $1 AND recipe_id = $2`, userID, recipeID)
	if err != nil {
		return false, fmt.Errorf("failed to delete saved recipe %s: %w", recipeID, err)
	}
	return tag.RowsAffected() > 0, nil
}
