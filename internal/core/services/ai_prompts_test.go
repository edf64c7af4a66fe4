package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mainmeal/mainmeal_backend/internal/models"
)

func TestSummarizeFamily(t *testing.T) {
	family := []models.FamilyMember{
		{
			MemberID: "m-1",
			Name:     "Grandma",
			Role:     models.RoleAdult,
			Conditions: []models.HealthCondition{
				{Type: models.ConditionDiabetes, Enabled: true},
				{Type: models.ConditionHypertension, Enabled: false},
			},
			CustomRestrictions: []string{"no cilantro"},
		},
		{MemberID: "m-2", Name: "Leo", Role: models.RoleBaby},
	}

	summary := summarizeFamily(family, true)

	assert.Contains(t, summary, `"Grandma"`)
	assert.Contains(t, summary, `"Adult"`)
	assert.Contains(t, summary, `"Baby"`)
	assert.Contains(t, summary, `"Diabetes"`)
	assert.Contains(t, summary, `"no cilantro"`)
	assert.Contains(t, summary, `"m-1"`)

	// Disabled conditions stay out of the prompt.
	assert.NotContains(t, summary, "Hypertension")
}

func TestSummarizeFamily_WithoutIDs(t *testing.T) {
	family := []models.FamilyMember{
		{
			MemberID:           "m-1",
			Name:               "Grandma",
			Role:               models.RoleAdult,
			CustomRestrictions: []string{"no cilantro"},
		},
	}

	summary := summarizeFamily(family, false)

	assert.NotContains(t, summary, "m-1")
	assert.NotContains(t, summary, "no cilantro")
}
