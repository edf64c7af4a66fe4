package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

type PgxUsageRepository struct {
	BaseRepository
}

func newPgxUsageRepository(db *pgxpool.Pool) portsrepo.UsageRepositoryFacade {
	return &PgxUsageRepository{BaseRepository{Pool: db}}
}

// Ensure PgxUsageRepository implements portsrepo.UsageRepositoryFacade
var _ portsrepo.UsageRepositoryFacade = (*PgxUsageRepository)(nil)

// IncrementIfUnderLimit performs the check and the increment in a single
// statement. The WHERE clause on the upsert makes Postgres skip the update
// when the counter already reached the limit, so two concurrent callers can
// never both pass a last remaining slot.
func (r *PgxUsageRepository) IncrementIfUnderLimit(ctx context.Context, userID, endpoint string, day time.Time, limit int) (int, bool, error) {
	day = day.UTC().Truncate(24 * time.Hour)
	now := time.Now().UTC()

	query := `
		INSERT INTO llm_usage (id, user_id, endpoint, usage_date, call_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 1, $5, $5)
		ON CONFLICT (user_id, endpoint, usage_date) DO UPDATE
		SET call_count = llm_usage.call_count + 1,
		    updated_at = EXCLUDED.updated_at
		WHERE llm_usage.call_count < $6
		RETURNING call_count;
	`
	var count int
	err := r.Pool.QueryRow(ctx, query, uuid.NewString(), userID, endpoint, day, now, limit).Scan(&count)
	if err == nil {
		return count, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("failed to increment usage counter: %w", err)
	}

	// The guarded upsert matched no row, so the counter is at or above the
	// limit. Read it back for the denial response.
	var current int
	err = r.Pool.QueryRow(ctx,
		`SELECT call_count FROM llm_usage WHERE user_id = $1 AND endpoint = $2 AND usage_date = $3`,
		userID, endpoint, day,
	).Scan(&current)
	if err != nil {
		return 0, false, fmt.Errorf("failed to read usage counter after denial: %w", err)
	}
	return current, false, nil
}

func (r *PgxUsageRepository) FindUsageForDay(ctx context.Context, userID string, day time.Time) ([]models.LLMUsage, error) {
	day = day.UTC().Truncate(24 * time.Hour)
	query := `
		SELECT id, user_id, endpoint, usage_date, call_count, created_at, updated_at
		FROM llm_usage
		WHERE user_id = $1 AND usage_date = $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage for day: %w", err)
	}
	defer rows.Close()

	var usage []models.LLMUsage
	for rows.Next() {
		var u models.LLMUsage
		if err := rows.Scan(&u.ID, &u.UserID, &u.Endpoint, &u.UsageDate, &u.CallCount, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		usage = append(usage, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating usage rows: %w", err)
	}
	return usage, nil
}

func (r *PgxUsageRepository) DeleteUsageBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM llm_usage WHERE usage_date < $1`, cutoff.UTC().Truncate(24*time.Hour))
	if err != nil {
		return 0, fmt.Errorf("failed to purge old usage rows: %w", err)
	}
	return tag.RowsAffected(), nil
}
