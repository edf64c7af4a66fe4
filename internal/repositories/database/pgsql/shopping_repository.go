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

type PgxShoppingRepository struct {
	BaseRepository
}

func newPgxShoppingRepository(db *pgxpool.Pool) portsrepo.ShoppingRepositoryFacade {
	return &PgxShoppingRepository{BaseRepository{Pool: db}}
}

// Ensure PgxShoppingRepository implements portsrepo.ShoppingRepositoryFacade
var _ portsrepo.ShoppingRepositoryFacade = (*PgxShoppingRepository)(nil)

func (r *PgxShoppingRepository) FindShoppingLists(ctx context.Context, userID string) ([]models.ShoppingList, error) {
	query := `
		SELECT list_id, user_id, name, created_at, completed_at
		FROM shopping_lists
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shopping lists: %w", err)
	}
	defer rows.Close()

	var lists []models.ShoppingList
	for rows.Next() {
		var list models.ShoppingList
		if err := rows.Scan(&list.ListID, &list.UserID, &list.Name, &list.CreatedAt, &list.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shopping list: %w", err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating shopping lists: %w", err)
	}

	for i := range lists {
		items, err := r.findItems(ctx, lists[i].ListID)
		if err != nil {
			return nil, err
		}
		lists[i].Items = items
	}
	return lists, nil
}

func (r *PgxShoppingRepository) FindShoppingListByID(ctx context.Context, userID, listID string) (*models.ShoppingList, error) {
	query := `
		SELECT list_id, user_id, name, created_at, completed_at
		FROM shopping_lists
		WHERE user_id = $1 AND list_id = $2;
	`
	var list models.ShoppingList
	err := r.Pool.QueryRow(ctx, query, userID, listID).Scan(
		&list.ListID, &list.UserID, &list.Name, &list.CreatedAt, &list.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find shopping list %s: %w", listID, err)
	}

	items, err := r.findItems(ctx, list.ListID)
	if err != nil {
		return nil, err
	}
	list.Items = items
	return &list, nil
}

func (r *PgxShoppingRepository) findItems(ctx context.Context, listID string) ([]models.ShoppingItem, error) {
	query := `
		SELECT id, list_id, ingredient, quantity, category, is_checked, source_recipe_id
		FROM shopping_items
		WHERE list_id = $1
		ORDER BY id;
	`
	rows, err := r.Pool.Query(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shopping items: %w", err)
	}
	defer rows.Close()

	var items []models.ShoppingItem
	for rows.Next() {
		var item models.ShoppingItem
		if err := rows.Scan(&item.ID, &item.ListID, &item.Ingredient, &item.Quantity, &item.Category, &item.IsChecked, &item.SourceRecipeID); err != nil {
			return nil, fmt.Errorf("failed to scan shopping item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating shopping items: %w", err)
	}
	return items, nil
}

func (r *PgxShoppingRepository) SaveShoppingList(ctx context.Context, list models.ShoppingList) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO shopping_lists (list_id, user_id, name, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := tx.Exec(ctx, query, list.ListID, list.UserID, list.Name, list.CreatedAt, list.CompletedAt); err != nil {
		return fmt.Errorf("failed to save shopping list: %w", err)
	}
	for _, item := range list.Items {
		if _, err := tx.Exec(ctx,
			`INSERT INTO shopping_items (list_id, ingredient, quantity, category, is_checked, source_recipe_id)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			list.ListID, item.Ingredient, item.Quantity, item.Category, item.IsChecked, item.SourceRecipeID,
		); err != nil {
			return fmt.Errorf("failed to save shopping item: %w", err)
		}
	}
	return r.Commit(ctx, tx)
}

func (r *PgxShoppingRepository) UpdateShoppingList(ctx context.Context, list models.ShoppingList) error {
	query := `
		UPDATE shopping_lists
		SET name = $3, completed_at = $4
		WHERE user_id = $1 AND list_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, list.UserID, list.ListID, list.Name, list.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to update shopping list %s: %w", list.ListID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxShoppingRepository) DeleteShoppingList(ctx context.Context, userID, listID string) (bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM shopping_items WHERE list_id IN (SELECT list_id FROM shopping_lists WHERE user_id = $1 AND list_id = $2)`,
		userID, listID,
	); err != nil {
		return false, fmt.Errorf("failed to clear shopping items: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM shopping_lists WHERE user_id = $1 AND list_id = $2`, userID, listID)
	if err != nil {
		return false, fmt.Errorf("failed to delete shopping list %s: %w", listID, err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxShoppingRepository) SaveShoppingItem(ctx context.Context, item *models.ShoppingItem) error {
	query := `
		INSERT INTO shopping_items (list_id, ingredient, quantity, category, is_checked, source_recipe_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		item.ListID, item.Ingredient, item.Quantity, item.Category, item.IsChecked, item.SourceRecipeID,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to save shopping item: %w", err)
	}
	return nil
}

// UpdateShoppingItem joins through shopping_lists so a user can only touch
// items on their own lists.
func (r *PgxShoppingRepository) UpdateShoppingItem(ctx context.Context, userID string, item models.ShoppingItem) error {
	query := `
		UPDATE shopping_items si
		SET ingredient = $4, quantity = $5, category = $6, is_checked = $7
		FROM shopping_lists sl
		WHERE si.list_id = sl.list_id
		  AND sl.user_id = $1 AND si.list_id = $2 AND si.id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query,
		userID, item.ListID, item.ID, item.Ingredient, item.Quantity, item.Category, item.IsChecked,
	)
	if err != nil {
		return fmt.Errorf("failed to update shopping item %d: %w", item.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxShoppingRepository) DeleteShoppingItem(ctx context.Context, userID, listID string, itemID int64) (bool, error) {
	query := `
		DELETE FROM shopping_items si
		USING shopping_lists sl
		WHERE si.list_id = sl.list_id
		  AND sl.user_id = $1 AND si.list_id = $2 AND si.id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, listID, itemID)
	if err != nil {
		return false, fmt.Errorf("failed to delete shopping item %d: %w", itemID, err)
	}
	return tag.RowsAffected() > 0, nil
}
