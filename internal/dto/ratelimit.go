package dto

import "time"

// EndpointUsage is today's consumption for one metered endpoint.
type EndpointUsage struct {
	Calls     int `json:"calls"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

// UsageStatsResponse maps every metered endpoint to today's usage. Endpoints
// with no calls today still appear with Calls zero.
type UsageStatsResponse struct {
	Date  string                   `json:"date"`
	Usage map[string]EndpointUsage `json:"usage"`
}

// RateLimitExceededResponse is the 429 body when the daily quota is spent.
type RateLimitExceededResponse struct {
	Error   string    `json:"error"`
	Message string    `json:"message"`
	Current int       `json:"current"`
	Limit   int       `json:"limit"`
	ResetAt time.Time `json:"reset_at"`
}
