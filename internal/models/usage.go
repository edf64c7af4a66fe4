package models

import "time"

// LLMUsage counts calls to one LLM endpoint by one user on one UTC calendar
// day. Rows are unique on (user_id, endpoint, usage_date); CallCount only ever
// grows within a day, and a new day gets a new row.
type LLMUsage struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Endpoint  string    `db:"endpoint"`
	UsageDate time.Time `db:"usage_date"`
	CallCount int       `db:"call_count"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
