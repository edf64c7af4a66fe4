package models

import "time"

// PantryItem is one ingredient a user keeps on hand.
type PantryItem struct {
	ID       int64     `json:"id" db:"id"`
	UserID   string    `json:"-" db:"user_id"`
	Name     string    `json:"name" db:"name"`
	Category *string   `json:"category,omitempty" db:"category"`
	AddedAt  time.Time `json:"addedAt" db:"added_at"`
}
