package models

import (
	"encoding/json"
	"time"
)

// SavedRecipe is a stored recipe with its LLM analysis snapshot.
// Analysis holds the raw analysis JSON as produced at save time; it is opaque
// to the storage layer.
type SavedRecipe struct {
	RecipeID   string          `json:"id" db:"recipe_id"`
	UserID     string          `json:"-" db:"user_id"`
	DishName   string          `json:"dish_name" db:"dish_name"`
	RecipeText *string         `json:"recipe_text,omitempty" db:"recipe_text"`
	Analysis   json.RawMessage `json:"analysis,omitempty" db:"analysis_json"`
	IsFavorite bool            `json:"is_favorite" db:"is_favorite"`
	Notes      *string         `json:"notes,omitempty" db:"notes"`
	Tags       []string        `json:"tags"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
}
