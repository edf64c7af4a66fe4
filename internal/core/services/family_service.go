package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

type familyService struct {
	familyRepo portsrepo.FamilyRepositoryFacade
}

// NewFamilyService creates a new instance of familyService.
func NewFamilyService(familyRepo portsrepo.FamilyRepositoryFacade) portssvc.FamilySvcFacade {
	return &familyService{familyRepo: familyRepo}
}

var _ portssvc.FamilySvcFacade = (*familyService)(nil)

func (s *familyService) GetFamily(ctx context.Context, userID string) ([]models.FamilyMember, error) {
	members, err := s.familyRepo.FindFamilyMembers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load family profile: %w", err)
	}
	if members == nil {
		members = []models.FamilyMember{}
	}
	return members, nil
}

func (s *familyService) AddMember(ctx context.Context, userID string, req dto.FamilyMemberRequest) (*models.FamilyMember, error) {
	member := memberFromRequest(userID, req)
	if err := s.familyRepo.SaveFamilyMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add family member: %w", err)
	}
	return &member, nil
}

func (s *familyService) UpdateMember(ctx context.Context, userID, memberID string, req dto.FamilyMemberRequest) (*models.FamilyMember, error) {
	member := memberFromRequest(userID, req)
	member.MemberID = memberID
	for i := range member.Conditions {
		member.Conditions[i].MemberID = memberID
	}
	if err := s.familyRepo.UpdateFamilyMember(ctx, member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *familyService) ReplaceFamily(ctx context.Context, userID string, req dto.ReplaceFamilyRequest) ([]models.FamilyMember, error) {
	members := make([]models.FamilyMember, 0, len(req.Members))
	for _, m := range req.Members {
		members = append(members, memberFromRequest(userID, m))
	}
	if err := s.familyRepo.ReplaceFamily(ctx, userID, members); err != nil {
		return nil, fmt.Errorf("failed to replace family profile: %w", err)
	}
	return members, nil
}

func (s *familyService) DeleteMember(ctx context.Context, userID, memberID string) error {
	existed, err := s.familyRepo.DeleteFamilyMember(ctx, userID, memberID)
	if err != nil {
		return fmt.Errorf("failed to delete family member: %w", err)
	}
	if !existed {
		return apperrors.ErrNotFound
	}
	return nil
}

// memberFromRequest builds the stored member, assigning an ID when the
// request omits one and defaulting the role to Adult.
func memberFromRequest(userID string, req dto.FamilyMemberRequest) models.FamilyMember {
	memberID := uuid.NewString()
	if req.ID != nil && *req.ID != "" {
		memberID = *req.ID
	}
	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleAdult
	}

	conditions := make([]models.HealthCondition, 0, len(req.Conditions))
	for _, c := range req.Conditions {
		conditions = append(conditions, models.HealthCondition{
			MemberID: memberID,
			Type:     models.ConditionType(c.Type),
			Enabled:  c.Enabled,
			Notes:    c.Notes,
		})
	}

	restrictions := req.CustomRestrictions
	if restrictions == nil {
		restrictions = []string{}
	}
	preferences := req.Preferences
	if preferences == nil {
		preferences = map[string]any{}
	}

	return models.FamilyMember{
		MemberID:           memberID,
		UserID:             userID,
		Name:               req.Name,
		Avatar:             req.Avatar,
		Role:               role,
		CustomRestrictions: restrictions,
		Preferences:        preferences,
		Conditions:         conditions,
	}
}
