package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user models.User) error {
	query := `
		INSERT INTO users (user_id, email, password_hash, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID,
		strings.ToLower(user.Email),
		user.PasswordHash,
		user.Name,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT user_id, email, password_hash, name, created_at, updated_at
		FROM users
		WHERE user_id = $1;
	`
	var user models.User
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&user.UserID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return &user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT user_id, email, password_hash, name, created_at, updated_at
		FROM users
		WHERE email = $1;
	`
	var user models.User
	err := r.Pool.QueryRow(ctx, query, strings.ToLower(email)).Scan(
		&user.UserID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user models.User) error {
	query := `
		UPDATE users
		SET email = $2, password_hash = $3, name = $4, updated_at = $5
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		user.UserID,
		strings.ToLower(user.Email),
		user.PasswordHash,
		user.Name,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update user %s: %w", user.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteUser removes the account and every row it owns inside one
// transaction, children before parent so no FK is ever violated mid-flight.
func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	ordered := []string{
		`DELETE FROM shopping_items WHERE list_id IN (SELECT list_id FROM shopping_lists WHERE user_id = $1)`,
		`DELETE FROM shopping_lists WHERE user_id = $1`,
		`DELETE FROM planned_meals WHERE plan_id IN (SELECT plan_id FROM meal_plans WHERE user_id = $1)`,
		`DELETE FROM meal_plans WHERE user_id = $1`,
		`DELETE FROM saved_recipes WHERE user_id = $1`,
		`DELETE FROM health_conditions WHERE member_id IN (SELECT member_id FROM family_members WHERE user_id = $1)`,
		`DELETE FROM family_members WHERE user_id = $1`,
		`DELETE FROM pantry_items WHERE user_id = $1`,
		`DELETE FROM llm_usage WHERE user_id = $1`,
		`DELETE FROM refresh_tokens WHERE user_id = $1`,
	}
	for _, query := range ordered {
		if _, err := tx.Exec(ctx, query, userID); err != nil {
			return fmt.Errorf("failed to delete user data: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
