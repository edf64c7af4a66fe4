package dto

import "github.com/mainmeal/mainmeal_backend/internal/models"

// RecipeAnalysisRequest asks for a per-member safety verdict on a recipe.
// When FamilyProfile is omitted the stored profile is used.
type RecipeAnalysisRequest struct {
	RecipeText    string                `json:"recipe_text" binding:"required"`
	FamilyProfile []models.FamilyMember `json:"family_profile"`
}

// AnalyzeIngredientsRequest checks a raw ingredient list against the family.
type AnalyzeIngredientsRequest struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1"`
}

// ExtractIngredientsRequest pulls a consolidated ingredient list out of
// free-form recipe text.
type ExtractIngredientsRequest struct {
	Recipes []string `json:"recipes" binding:"required,min=1"`
}

// Substitution proposes a swap that makes a recipe safe for a member.
type Substitution struct {
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	Reason      string `json:"reason"`
}

// Adaptation describes how to adjust a recipe for one member.
type Adaptation struct {
	Modifications      []string       `json:"modifications"`
	Substitutions      []Substitution `json:"substitutions"`
	PreparationChanges []string       `json:"preparation_changes"`
}

// MemberVerdict is the safety call for one family member.
type MemberVerdict struct {
	MemberID         string      `json:"member_id"`
	MemberName       string      `json:"member_name"`
	Verdict          string      `json:"verdict"`
	Reasons          []string    `json:"reasons"`
	Concerns         []string    `json:"concerns"`
	Adaptations      *Adaptation `json:"adaptations,omitempty"`
	NutritionalNotes *string     `json:"nutritional_notes,omitempty"`
}

// RecipeAnalysis is the full model verdict on a recipe.
type RecipeAnalysis struct {
	DishName        string          `json:"dish_name"`
	BaseDescription string          `json:"base_description"`
	OverallSafety   string          `json:"overall_safety"`
	MemberVerdicts  []MemberVerdict `json:"member_verdicts"`
	GeneralTips     []string        `json:"general_tips"`
}

// IngredientConcern flags one ingredient for specific members.
type IngredientConcern struct {
	Ingredient      string   `json:"ingredient"`
	AffectedMembers []string `json:"affected_members"`
	Reason          string   `json:"reason"`
	Severity        string   `json:"severity"`
}

// IngredientAnalysis is the verdict on an ingredient list or product label.
type IngredientAnalysis struct {
	ProductName          *string             `json:"product_name,omitempty"`
	ExtractedIngredients []string            `json:"extracted_ingredients"`
	OverallSafety        string              `json:"overall_safety"`
	Concerns             []IngredientConcern `json:"concerns"`
	SafeForAll           []string            `json:"safe_for_all"`
	Recommendations      []string            `json:"recommendations"`
}

// RecipeSuggestion is one dish proposal built from available ingredients.
type RecipeSuggestion struct {
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	Difficulty            string   `json:"difficulty"`
	PrepTime              string   `json:"prep_time"`
	MatchingIngredients   []string `json:"matching_ingredients"`
	AdditionalIngredients []string `json:"additional_ingredients"`
	SafetyNotes           []string `json:"safety_notes"`
	FamilyFriendlyScore   int      `json:"family_friendly_score"`
}

// RecipeSuggestions is the response to a pantry-based suggestion request.
type RecipeSuggestions struct {
	Suggestions []RecipeSuggestion `json:"suggestions"`
	Tips        []string           `json:"tips"`
}

// ExtractedIngredient is one consolidated ingredient pulled from recipe text.
type ExtractedIngredient struct {
	Ingredient string  `json:"ingredient"`
	Quantity   *string `json:"quantity"`
	Category   *string `json:"category"`
}

// ExtractedIngredientsResponse is the consolidated list across all recipes.
type ExtractedIngredientsResponse struct {
	Ingredients []ExtractedIngredient `json:"ingredients"`
}
