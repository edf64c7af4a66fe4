package services

import (
	"context"
	"time"

	"github.com/mainmeal/mainmeal_backend/internal/dto"
)

// AdmitResult is the outcome of one quota check. Current already includes
// the admitted call when Allowed is true.
type AdmitResult struct {
	Allowed   bool
	Current   int
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RateLimiterSvcFacade enforces per-user daily quotas on metered endpoints.
// Days are UTC calendar days; every counter resets at UTC midnight.
type RateLimiterSvcFacade interface {
	// Admit spends one call from the (user, endpoint) quota for the UTC day
	// containing now. A denied call leaves the counter untouched.
	Admit(ctx context.Context, userID, endpoint string, now time.Time) (AdmitResult, error)

	// UsageStats reports today's consumption across all metered endpoints,
	// including endpoints the user has not called today.
	UsageStats(ctx context.Context, userID string, now time.Time) (dto.UsageStatsResponse, error)

	// LimitFor returns the configured daily limit for an endpoint.
	LimitFor(endpoint string) int
}
