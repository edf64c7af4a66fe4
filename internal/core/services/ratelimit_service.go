package services

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/platform/config"
)

// rateLimitService implements RateLimiterSvcFacade on top of the usage
// counter table. All day math is UTC; a quota window is one UTC calendar day
// and every counter resets at the next UTC midnight.
type rateLimitService struct {
	usageRepo portsrepo.UsageRepositoryFacade
	limits    map[string]int
	fallback  int
}

// NewRateLimitService creates a new instance of rateLimitService.
func NewRateLimitService(cfg *config.Config, usageRepo portsrepo.UsageRepositoryFacade) portssvc.RateLimiterSvcFacade {
	limits := make(map[string]int, len(cfg.LLMDailyLimits))
	for endpoint, limit := range cfg.LLMDailyLimits {
		limits[endpoint] = limit
	}
	return &rateLimitService{
		usageRepo: usageRepo,
		limits:    limits,
		fallback:  config.DefaultLLMDailyLimit,
	}
}

var _ portssvc.RateLimiterSvcFacade = (*rateLimitService)(nil)

// LimitFor returns the configured daily limit for an endpoint. Endpoints
// without an explicit limit share a conservative fallback.
func (s *rateLimitService) LimitFor(endpoint string) int {
	if limit, ok := s.limits[endpoint]; ok {
		return limit
	}
	return s.fallback
}

// Admit spends one call from the (user, endpoint) quota for the UTC day
// containing now. The storage layer does the check and the increment in one
// atomic statement, so N concurrent calls against a limit of L admit exactly
// min(N, remaining) of them. Denials never move the counter.
func (s *rateLimitService) Admit(ctx context.Context, userID, endpoint string, now time.Time) (portssvc.AdmitResult, error) {
	now = now.UTC()
	limit := s.LimitFor(endpoint)
	day := now.Truncate(24 * time.Hour)

	count, allowed, err := s.usageRepo.IncrementIfUnderLimit(ctx, userID, endpoint, day, limit)
	if err != nil {
		return portssvc.AdmitResult{}, fmt.Errorf("failed to admit call for %s: %w", endpoint, err)
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return portssvc.AdmitResult{
		Allowed:   allowed,
		Current:   count,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   nextUTCMidnight(now),
	}, nil
}

// UsageStats reports today's consumption for every configured endpoint,
// synthesizing zero rows for endpoints the user has not touched today.
func (s *rateLimitService) UsageStats(ctx context.Context, userID string, now time.Time) (dto.UsageStatsResponse, error) {
	now = now.UTC()
	day := now.Truncate(24 * time.Hour)

	rows, err := s.usageRepo.FindUsageForDay(ctx, userID, day)
	if err != nil {
		return dto.UsageStatsResponse{}, fmt.Errorf("failed to load usage stats: %w", err)
	}

	usage := make(map[string]dto.EndpointUsage, len(s.limits))
	for endpoint, limit := range s.limits {
		usage[endpoint] = dto.EndpointUsage{Calls: 0, Limit: limit, Remaining: limit}
	}
	for _, row := range rows {
		limit := s.LimitFor(row.Endpoint)
		remaining := limit - row.CallCount
		if remaining < 0 {
			remaining = 0
		}
		usage[row.Endpoint] = dto.EndpointUsage{
			Calls:     row.CallCount,
			Limit:     limit,
			Remaining: remaining,
		}
	}

	return dto.UsageStatsResponse{
		Date:  day.Format("2006-01-02"),
		Usage: usage,
	}, nil
}

func nextUTCMidnight(now time.Time) time.Time {
	return now.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
}
