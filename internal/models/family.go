package models

// Role classifies a family member for age-appropriate dietary guidance.
type Role string

const (
	RoleAdult Role = "Adult"
	RoleChild Role = "Child"
	RoleBaby  Role = "Baby"
)

// ConditionType is a known health condition tracked per family member.
type ConditionType string

const (
	ConditionDiabetes           ConditionType = "Diabetes"
	ConditionHighUricAcid       ConditionType = "High Uric Acid"
	ConditionHypertension       ConditionType = "Hypertension"
	ConditionHeartDisease       ConditionType = "Heart Disease"
	ConditionKidneyDisease      ConditionType = "Kidney Disease"
	ConditionCeliac             ConditionType = "Celiac (Gluten-Free)"
	ConditionLactoseIntolerance ConditionType = "Lactose Intolerance"
	ConditionPeanutAllergy      ConditionType = "Peanut Allergy"
)

// HealthCondition is one condition row attached to a family member.
type HealthCondition struct {
	ID       int64         `json:"-" db:"id"`
	MemberID string        `json:"-" db:"member_id"`
	Type     ConditionType `json:"type" db:"condition_type"`
	Enabled  bool          `json:"enabled" db:"enabled"`
	Notes    *string       `json:"notes,omitempty" db:"notes"`
}

// FamilyMember is a dietary profile row. CustomRestrictions and Preferences
// are stored as JSON text columns, mirroring how clients send them.
type FamilyMember struct {
	MemberID           string            `json:"id" db:"member_id"`
	UserID             string            `json:"-" db:"user_id"`
	Name               string            `json:"name" db:"name"`
	Avatar             string            `json:"avatar" db:"avatar"`
	Role               Role              `json:"role" db:"role"`
	CustomRestrictions []string          `json:"custom_restrictions"`
	Preferences        map[string]any    `json:"preferences,omitempty"`
	Conditions         []HealthCondition `json:"conditions"`
}
