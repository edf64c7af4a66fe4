package repositories

import (
	"context"
	"time"

	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// UsageCounter is the storage side of the daily quota. The increment and the
// limit check happen in one statement so concurrent callers can never push a
// counter past its limit.
type UsageCounter interface {
	// IncrementIfUnderLimit bumps the (user, endpoint, day) counter only if it
	// is currently below limit. It returns the new count and true when the
	// call was admitted, or the existing count and false when it was not.
	// Denied calls never change the counter.
	IncrementIfUnderLimit(ctx context.Context, userID, endpoint string, day time.Time, limit int) (int, bool, error)

	// FindUsageForDay returns all usage rows for the user on the given day.
	FindUsageForDay(ctx context.Context, userID string, day time.Time) ([]models.LLMUsage, error)
}

// UsageJanitor removes usage rows older than the cutoff date.
type UsageJanitor interface {
	DeleteUsageBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// UsageRepositoryFacade combines all usage-related repository interfaces
type UsageRepositoryFacade interface {
	UsageCounter
	UsageJanitor
}
