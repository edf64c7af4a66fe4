package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
	"github.com/mainmeal/mainmeal_backend/internal/core/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// fakeFamilyRepo stores members keyed by member ID.
type fakeFamilyRepo struct {
	members map[string]models.FamilyMember
}

func newFakeFamilyRepo() *fakeFamilyRepo {
	return &fakeFamilyRepo{members: make(map[string]models.FamilyMember)}
}

func (f *fakeFamilyRepo) FindFamilyMembers(_ context.Context, userID string) ([]models.FamilyMember, error) {
	var members []models.FamilyMember
	for _, m := range f.members {
		if m.UserID == userID {
			members = append(members, m)
		}
	}
	return members, nil
}

func (f *fakeFamilyRepo) FindFamilyMemberByID(_ context.Context, userID, memberID string) (*models.FamilyMember, error) {
	m, ok := f.members[memberID]
	if !ok || m.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &m, nil
}

func (f *fakeFamilyRepo) SaveFamilyMember(_ context.Context, member models.FamilyMember) error {
	f.members[member.MemberID] = member
	return nil
}

func (f *fakeFamilyRepo) UpdateFamilyMember(_ context.Context, member models.FamilyMember) error {
	if _, ok := f.members[member.MemberID]; !ok {
		return apperrors.ErrNotFound
	}
	f.members[member.MemberID] = member
	return nil
}

func (f *fakeFamilyRepo) ReplaceFamily(_ context.Context, userID string, members []models.FamilyMember) error {
	for id, m := range f.members {
		if m.UserID == userID {
			delete(f.members, id)
		}
	}
	for _, m := range members {
		f.members[m.MemberID] = m
	}
	return nil
}

func (f *fakeFamilyRepo) DeleteFamilyMember(_ context.Context, userID, memberID string) (bool, error) {
	m, ok := f.members[memberID]
	if !ok || m.UserID != userID {
		return false, nil
	}
	delete(f.members, memberID)
	return true, nil
}

func TestFamilyService_AddMember(t *testing.T) {
	svc := services.NewFamilyService(newFakeFamilyRepo())
	notes := "diagnosed 2024"

	member, err := svc.AddMember(context.Background(), "user-1", dto.FamilyMemberRequest{
		Name: "Grandma",
		Role: "Adult",
		Conditions: []dto.HealthConditionRequest{
			{Type: "Diabetes", Enabled: true, Notes: &notes},
			{Type: "High Uric Acid", Enabled: false},
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, member.MemberID)
	assert.Equal(t, models.RoleAdult, member.Role)
	require.Len(t, member.Conditions, 2)
	assert.Equal(t, models.ConditionDiabetes, member.Conditions[0].Type)
	assert.Equal(t, models.ConditionHighUricAcid, member.Conditions[1].Type)
	assert.Equal(t, member.MemberID, member.Conditions[0].MemberID)
	require.NotNil(t, member.Conditions[0].Notes)
	assert.Equal(t, notes, *member.Conditions[0].Notes)
}

func TestFamilyService_AddMember_RoleDefaultsToAdult(t *testing.T) {
	svc := services.NewFamilyService(newFakeFamilyRepo())

	member, err := svc.AddMember(context.Background(), "user-1", dto.FamilyMemberRequest{Name: "Sam"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdult, member.Role)
}

func TestFamilyService_UpdateMember_KeepsID(t *testing.T) {
	repo := newFakeFamilyRepo()
	svc := services.NewFamilyService(repo)
	ctx := context.Background()

	created, err := svc.AddMember(ctx, "user-1", dto.FamilyMemberRequest{Name: "Leo", Role: "Child"})
	require.NoError(t, err)

	updated, err := svc.UpdateMember(ctx, "user-1", created.MemberID, dto.FamilyMemberRequest{
		Name: "Leo",
		Role: "Baby",
		Conditions: []dto.HealthConditionRequest{
			{Type: "Peanut Allergy", Enabled: true},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, created.MemberID, updated.MemberID)
	assert.Equal(t, models.RoleBaby, updated.Role)
	require.Len(t, updated.Conditions, 1)
	assert.Equal(t, models.ConditionPeanutAllergy, updated.Conditions[0].Type)
	assert.Equal(t, created.MemberID, updated.Conditions[0].MemberID)
}

func TestFamilyService_DeleteMember_NotFound(t *testing.T) {
	svc := services.NewFamilyService(newFakeFamilyRepo())

	err := svc.DeleteMember(context.Background(), "user-1", "no-such-member")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
