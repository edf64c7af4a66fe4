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

type PgxFamilyRepository struct {
	BaseRepository
}

func newPgxFamilyRepository(db *pgxpool.Pool) portsrepo.FamilyRepositoryFacade {
	return &PgxFamilyRepository{BaseRepository{Pool: db}}
}

// Ensure PgxFamilyRepository implements portsrepo.FamilyRepositoryFacade
var _ portsrepo.FamilyRepositoryFacade = (*PgxFamilyRepository)(nil)

func (r *PgxFamilyRepository) FindFamilyMembers(ctx context.Context, userID string) ([]models.FamilyMember, error) {
	query := `
		SELECT member_id, user_id, name, avatar, role, custom_restrictions, preferences
		FROM family_members
		WHERE user_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query family members: %w", err)
	}
	defer rows.Close()

	var members []models.FamilyMember
	for rows.Next() {
		var m models.FamilyMember
		if err := rows.Scan(&m.MemberID, &m.UserID, &m.Name, &m.Avatar, &m.Role, &m.CustomRestrictions, &m.Preferences); err != nil {
			return nil, fmt.Errorf("failed to scan family member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating family members: %w", err)
	}

	for i := range members {
		conditions, err := r.findConditions(ctx, members[i].MemberID)
		if err != nil {
			return nil, err
		}
		members[i].Conditions = conditions
	}
	return members, nil
}

func (r *PgxFamilyRepository) FindFamilyMemberByID(ctx context.Context, userID, memberID string) (*models.FamilyMember, error) {
	query := `
		SELECT member_id, user_id, name, avatar, role, custom_restrictions, preferences
		FROM family_members
		WHERE user_id = $1 AND member_id = $2;
	`
	var m models.FamilyMember
	err := r.Pool.QueryRow(ctx, query, userID, memberID).Scan(
		&m.MemberID, &m.UserID, &m.Name, &m.Avatar, &m.Role, &m.CustomRestrictions, &m.Preferences,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find family member %s: %w", memberID, err)
	}

	conditions, err := r.findConditions(ctx, m.MemberID)
	if err != nil {
		return nil, err
	}
	m.Conditions = conditions
	return &m, nil
}

func (r *PgxFamilyRepository) findConditions(ctx context.Context, memberID string) ([]models.HealthCondition, error) {
	query := `
		SELECT id, member_id, type, enabled, notes
		FROM health_conditions
		WHERE member_id = $1
		ORDER BY type;
	`
	rows, err := r.Pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query health conditions: %w", err)
	}
	defer rows.Close()

	var conditions []models.HealthCondition
	for rows.Next() {
		var c models.HealthCondition
		if err := rows.Scan(&c.ID, &c.MemberID, &c.Type, &c.Enabled, &c.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan health condition: %w", err)
		}
		conditions = append(conditions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating health conditions: %w", err)
	}
	return conditions, nil
}

func (r *PgxFamilyRepository) SaveFamilyMember(ctx context.Context, member models.FamilyMember) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := insertMemberTx(ctx, tx, member); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxFamilyRepository) UpdateFamilyMember(ctx context.Context, member models.FamilyMember) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		UPDATE family_members
		SET name = $3, avatar = $4, role = $5, custom_restrictions = $6, preferences = $7
		WHERE user_id = $1 AND member_id = $2;
	`
	tag, err := tx.Exec(ctx, query,
		member.UserID, member.MemberID, member.Name, member.Avatar, member.Role,
		member.CustomRestrictions, member.Preferences,
	)
	if err != nil {
		return fmt.Errorf("failed to update family member %s: %w", member.MemberID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	// Conditions are replaced wholesale; the request carries the full set.
	if _, err := tx.Exec(ctx, `DELETE FROM health_conditions WHERE member_id = $1`, member.MemberID); err != nil {
		return fmt.Errorf("failed to clear health conditions: %w", err)
	}
	if err := insertConditionsTx(ctx, tx, member.MemberID, member.Conditions); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxFamilyRepository) ReplaceFamily(ctx context.Context, userID string, members []models.FamilyMember) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM health_conditions WHERE member_id IN (SELECT member_id FROM family_members WHERE user_id = $1)`,
		userID,
	); err != nil {
		return fmt.Errorf("failed to clear health conditions: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM family_members WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear family members: %w", err)
	}
	for _, member := range members {
		if err := insertMemberTx(ctx, tx, member); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

func (r *PgxFamilyRepository) DeleteFamilyMember(ctx context.Context, userID, memberID string) (bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM health_conditions WHERE member_id = $1`, memberID); err != nil {
		return false, fmt.Errorf("failed to clear health conditions: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM family_members WHERE user_id = $1 AND member_id = $2`, userID, memberID)
	if err != nil {
		return false, fmt.Errorf("failed to delete family member %s: %w", memberID, err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func insertMemberTx(ctx context.Context, tx pgx.Tx, member models.FamilyMember) error {
	query := `
		INSERT INTO family_members (member_id, user_id, name, avatar, role, custom_restrictions, preferences, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now());
	`
	if _, err := tx.Exec(ctx, query,
		member.MemberID, member.UserID, member.Name, member.Avatar, member.Role,
		member.CustomRestrictions, member.Preferences,
	); err != nil {
		return fmt.Errorf("failed to save family member: %w", err)
	}
	return insertConditionsTx(ctx, tx, member.MemberID, member.Conditions)
}

func insertConditionsTx(ctx context.Context, tx pgx.Tx, memberID string, conditions []models.HealthCondition) error {
	for _, c := range conditions {
		if _, err := tx.Exec(ctx,
			`INSERT INTO health_conditions (member_id, type, enabled, notes) VALUES ($1, $2, $3, $4)`,
			memberID, c.Type, c.Enabled, c.Notes,
		); err != nil {
			return fmt.Errorf("failed to save health condition: %w", err)
		}
	}
	return nil
}
