package dto

import "github.com/mainmeal/mainmeal_backend/internal/models"

// HealthConditionRequest toggles one condition for a member.
type HealthConditionRequest struct {
	Type    string  `json:"type" binding:"required,oneof='Diabetes' 'High Uric Acid' 'Hypertension' 'Heart Disease' 'Kidney Disease' 'Celiac (Gluten-Free)' 'Lactose Intolerance' 'Peanut Allergy'"`
	Enabled bool    `json:"enabled"`
	Notes   *string `json:"notes"`
}

// FamilyMemberRequest creates or replaces one family member. ID is assigned
// server-side when omitted so the same payload works for PUT replacement.
type FamilyMemberRequest struct {
	ID                 *string                  `json:"id"`
	Name               string                   `json:"name" binding:"required"`
	Avatar             string                   `json:"avatar"`
	Role               string                   `json:"role" binding:"omitempty,oneof=Adult Child Baby"`
	Conditions         []HealthConditionRequest `json:"conditions" binding:"dive"`
	CustomRestrictions []string                 `json:"custom_restrictions"`
	Preferences        map[string]any           `json:"preferences"`
}

// ReplaceFamilyRequest swaps the entire family profile in one call.
type ReplaceFamilyRequest struct {
	Members []FamilyMemberRequest `json:"members" binding:"dive"`
}

// FamilyProfileResponse is the stored family profile for the current user.
type FamilyProfileResponse struct {
	Members []models.FamilyMember `json:"members"`
}
