package services

import (
	"context"

	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// FamilySvcFacade manages the user's family profile.
type FamilySvcFacade interface {
	// GetFamily returns the user's family members, conditions included.
	GetFamily(ctx context.Context, userID string) ([]models.FamilyMember, error)

	// AddMember appends one member to the profile.
	AddMember(ctx context.Context, userID string, req dto.FamilyMemberRequest) (*models.FamilyMember, error)

	// UpdateMember replaces one member's fields and conditions.
	UpdateMember(ctx context.Context, userID, memberID string, req dto.FamilyMemberRequest) (*models.FamilyMember, error)

	// ReplaceFamily swaps the entire profile in one call.
	ReplaceFamily(ctx context.Context, userID string, req dto.ReplaceFamilyRequest) ([]models.FamilyMember, error)

	// DeleteMember removes one member from the profile.
	DeleteMember(ctx context.Context, userID, memberID string) error
}
