package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mainmeal/mainmeal_backend/internal/models"
)

const systemContext = `You are a professional nutritionist and dietary expert specializing in family meal planning. Your role is to:

1. Analyze recipes against specific health conditions and dietary restrictions
2. Provide accurate, safe, and practical adaptations
3. Consider age-appropriate modifications (especially for babies and children)
4. Flag potential safety concerns clearly
5. Offer creative substitutions that maintain flavor and nutrition
6. Use evidence-based nutritional knowledge

Safety Guidelines:
- For babies (under 2 years): No honey, whole nuts, raw eggs, high-sodium foods, choking hazards, limit sugar
- For diabetes: Focus on low glycemic index, portion control, complex carbs over simple sugars
- For high uric acid: Avoid high-purine foods (organ meats, certain seafood, excessive red meat, beer)
- For hypertension: Limit sodium (under 1500mg/day), avoid processed foods, recommend herbs/spices over salt
- For heart disease: Low saturated fat, no trans fats, limit cholesterol
- For kidney disease: Monitor potassium, phosphorus, and protein intake
- For celiac/gluten-free: Absolutely no wheat, barley, rye, or cross-contaminated foods
- For lactose intolerance: Avoid dairy or suggest lactose-free alternatives
- For peanut allergy: Absolutely no peanuts or peanut products, watch for cross-contamination

Always respond in valid JSON format with the specified structure. Be practical and specific with adaptations.`

// memberSummary is the compact view of a family member sent to the model.
type memberSummary struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Conditions   []string `json:"conditions"`
	Restrictions []string `json:"restrictions,omitempty"`
}

func summarizeFamily(family []models.FamilyMember, includeIDs bool) string {
	summaries := make([]memberSummary, 0, len(family))
	for _, member := range family {
		conditions := make([]string, 0, len(member.Conditions))
		for _, c := range member.Conditions {
			if c.Enabled {
				conditions = append(conditions, string(c.Type))
			}
		}
		summary := memberSummary{
			Name:       member.Name,
			Role:       string(member.Role),
			Conditions: conditions,
		}
		if includeIDs {
			summary.ID = member.MemberID
			summary.Restrictions = member.CustomRestrictions
		}
		summaries = append(summaries, summary)
	}
	encoded, _ := json.MarshalIndent(summaries, "", "  ")
	return string(encoded)
}

func buildRecipeAnalysisPrompt(recipeText string, family []models.FamilyMember) string {
	return fmt.Sprintf(`%s

Analyze the following recipe for a family with diverse dietary needs.

RECIPE:
%s

FAMILY MEMBERS:
%s

Provide a comprehensive analysis in the following JSON format (respond ONLY with valid JSON, no markdown code blocks):
{
  "dish_name": "Name of the dish",
  "base_description": "Brief description of the dish and its main components",
  "overall_safety": "safe|caution|unsafe",
  "member_verdicts": [
    {
      "member_id": "id from family members",
      "member_name": "name",
      "verdict": "safe|needs_adaptation|not_recommended",
      "reasons": ["Specific reasons for this verdict"],
      "concerns": ["Any safety concerns - leave empty array if none"],
      "adaptations": {
        "modifications": ["Modification instructions - leave empty if not needed"],
        "substitutions": [
          {
            "original": "ingredient to replace",
            "replacement": "what to use instead",
            "reason": "why this substitution helps"
          }
        ],
        "preparation_changes": ["Cooking method changes - leave empty if not needed"]
      },
      "nutritional_notes": "Additional nutritional guidance specific to this person"
    }
  ],
  "general_tips": ["Tips for cooking this dish for the whole family"]
}

Be specific, practical, and safety-focused. Only respond with valid JSON, no explanation before or after.`,
		systemContext, recipeText, summarizeFamily(family, true))
}

func buildIngredientAnalysisPrompt(ingredients []string, family []models.FamilyMember) string {
	return fmt.Sprintf(`%s

Analyze these ingredients for family safety:

INGREDIENTS:
%s

FAMILY MEMBERS:
%s

Respond in JSON format (no markdown code blocks):
{
  "overall_safety": "safe|caution|unsafe",
  "concerns": [
    {
      "ingredient": "ingredient name",
      "affected_members": ["member names who should avoid this"],
      "reason": "why it's a concern",
      "severity": "low|medium|high"
    }
  ],
  "safe_for_all": ["ingredients safe for everyone"],
  "recommendations": ["what to do - buy it, avoid it, or use with caution"]
}`,
		systemContext, strings.Join(ingredients, ", "), summarizeFamily(family, false))
}

func buildLabelImagePrompt(family []models.FamilyMember) string {
	return fmt.Sprintf(`%s

Analyze this ingredient label image. Extract all ingredients you can read and check them against this family's dietary needs.

FAMILY MEMBERS:
%s

Respond in JSON format (no markdown code blocks):
{
  "product_name": "Product name if visible, otherwise 'Unknown Product'",
  "extracted_ingredients": ["ingredient1", "ingredient2", ...],
  "overall_safety": "safe|caution|unsafe",
  "concerns": [
    {
      "ingredient": "ingredient name",
      "affected_members": ["member names who should avoid this"],
      "reason": "why it's a concern",
      "severity": "low|medium|high"
    }
  ],
  "safe_for_all": ["ingredients safe for everyone"],
  "recommendations": ["what to do - buy it, avoid it, or use with caution"]
}

If you cannot read the image clearly, still provide your best analysis with a note about image quality.`,
		systemContext, summarizeFamily(family, false))
}

func buildSuggestionPrompt(ingredients []string, family []models.FamilyMember) string {
	return fmt.Sprintf(`%s

Based on these available ingredients, suggest 3-5 recipes that would be suitable for this family.

AVAILABLE INGREDIENTS:
%s

FAMILY MEMBERS:
%s

Respond in JSON format (no markdown code blocks):
{
  "suggestions": [
    {
      "name": "Recipe name",
      "description": "Brief description",
      "difficulty": "easy|medium|hard",
      "prep_time": "estimated time",
      "matching_ingredients": ["ingredients from pantry used"],
      "additional_ingredients": ["ingredients needed but not in pantry"],
      "safety_notes": ["any dietary considerations for the family"],
      "family_friendly_score": 5
    }
  ],
  "tips": ["General cooking tips based on available ingredients"]
}`,
		systemContext, strings.Join(ingredients, ", "), summarizeFamily(family, false))
}

func buildExtractionPrompt(recipes []string) string {
	var sb strings.Builder
	for i, recipe := range recipes {
		fmt.Fprintf(&sb, "Recipe %d:\n%s\n", i+1, recipe)
	}
	return fmt.Sprintf(`%s

Extract all ingredients needed for these recipes and combine them into a shopping list.
Merge similar ingredients and sum up quantities where possible.

RECIPES:
%s

Respond in JSON format (no markdown code blocks):
{
  "ingredients": [
    {
      "ingredient": "ingredient name (standardized, e.g., 'chicken breast' not 'chicken')",
      "quantity": "combined quantity with unit (e.g., '2 lbs', '3 cups')",
      "category": "produce|dairy|meat|seafood|pantry|bakery|frozen|beverages|other"
    }
  ]
}

Guidelines:
- Combine similar ingredients (e.g., 2 cups + 1 cup flour = 3 cups flour)
- Use standard grocery categories
- Be specific with ingredient names
- Include all necessary ingredients, even common ones like salt and oil`,
		systemContext, sb.String())
}
