package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

type PgxPantryRepository struct {
	BaseRepository
}

func newPgxPantryRepository(db *pgxpool.Pool) portsrepo.PantryRepositoryFacade {
	return &PgxPantryRepository{BaseRepository{Pool: db}}
}

// Ensure PgxPantryRepository implements portsrepo.PantryRepositoryFacade
var _ portsrepo.PantryRepositoryFacade = (*PgxPantryRepository)(nil)

func (r *PgxPantryRepository) FindPantryItems(ctx context.Context, userID string) ([]models.PantryItem, error) {
	query := `
		SELECT id, user_id, name, category, added_at
		FROM pantry_items
		WHERE user_id = $1
		ORDER BY added_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pantry items: %w", err)
	}
	defer rows.Close()

	var items []models.PantryItem
	for rows.Next() {
		var item models.PantryItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Category, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pantry item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating pantry items: %w", err)
	}
	return items, nil
}

func (r *PgxPantryRepository) SavePantryItem(ctx context.Context, item *models.PantryItem) error {
	query := `
		INSERT INTO pantry_items (user_id, name, category, added_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query, item.UserID, item.Name, item.Category, item.AddedAt).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to save pantry item: %w", err)
	}
	return nil
}

func (r *PgxPantryRepository) DeletePantryItem(ctx context.Context, userID string, itemID int64) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM pantry_items WHERE user_id = $1 AND id = $2`, userID, itemID)
	if err != nil {
		return false, fmt.Errorf("failed to delete pantry item %d: %w", itemID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxPantryRepository) ClearPantry(ctx context.Context, userID string) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM pantry_items WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear pantry: %w", err)
	}
	return tag.RowsAffected(), nil
}
