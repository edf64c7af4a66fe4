package repositories

import (
	"context"

	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// FamilyReader defines read operations for family profile data
type FamilyReader interface {
	// FindFamilyMembers lists the members of the user's family profile,
	// conditions included.
	FindFamilyMembers(ctx context.Context, userID string) ([]models.FamilyMember, error)

	// FindFamilyMemberByID retrieves one member owned by userID.
	FindFamilyMemberByID(ctx context.Context, userID, memberID string) (*models.FamilyMember, error)
}

// FamilyWriter defines write operations for family profile data
type FamilyWriter interface {
	// SaveFamilyMember persists a new member with their conditions.
	SaveFamilyMember(ctx context.Context, member models.FamilyMember) error

	// UpdateFamilyMember replaces a member's fields and conditions.
	UpdateFamilyMember(ctx context.Context, member models.FamilyMember) error

	// ReplaceFamily swaps the user's whole profile in one transaction.
	ReplaceFamily(ctx context.Context, userID string, members []models.FamilyMember) error

	// DeleteFamilyMember removes one member; reports whether it existed.
	DeleteFamilyMember(ctx context.Context, userID, memberID string) (bool, error)
}

// FamilyRepositoryFacade combines all family-related repository interfaces
type FamilyRepositoryFacade interface {
	FamilyReader
	FamilyWriter
}
