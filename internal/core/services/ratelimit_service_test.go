package services_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mainmeal/mainmeal_backend/internal/core/services"
	"github.com/mainmeal/mainmeal_backend/internal/models"
	"github.com/mainmeal/mainmeal_backend/internal/platform/config"
)

// usageKey identifies one counter row the same way the real table's unique
// constraint does.
type usageKey struct {
	userID   string
	endpoint string
	date     string
}

// fakeUsageRepo mirrors the guarded-upsert semantics of the SQL counter:
// the check and the increment happen under one lock (one statement in the
// real table), and denials leave state untouched.
type fakeUsageRepo struct {
	mu     sync.Mutex
	counts map[usageKey]int
}

func newFakeUsageRepo() *fakeUsageRepo {
	return &fakeUsageRepo{counts: make(map[usageKey]int)}
}

func keyFor(userID, endpoint string, day time.Time) usageKey {
	return usageKey{userID: userID, endpoint: endpoint, date: day.UTC().Format("2006-01-02")}
}

func (f *fakeUsageRepo) IncrementIfUnderLimit(_ context.Context, userID, endpoint string, day time.Time, limit int) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := keyFor(userID, endpoint, day)
	current := f.counts[key]
	if current >= limit {
		return current, false, nil
	}
	f.counts[key] = current + 1
	return current + 1, true, nil
}

func (f *fakeUsageRepo) FindUsageForDay(_ context.Context, userID string, day time.Time) ([]models.LLMUsage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	date := day.UTC().Format("2006-01-02")
	var rows []models.LLMUsage
	for key, count := range f.counts {
		if key.userID != userID || key.date != date {
			continue
		}
		usageDate, err := time.Parse("2006-01-02", key.date)
		if err != nil {
			return nil, fmt.Errorf("bad usage date %q: %w", key.date, err)
		}
		rows = append(rows, models.LLMUsage{
			UserID:    key.userID,
			Endpoint:  key.endpoint,
			UsageDate: usageDate,
			CallCount: count,
		})
	}
	return rows, nil
}

func (f *fakeUsageRepo) DeleteUsageBefore(_ context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func testRateLimitConfig() *config.Config {
	return &config.Config{
		LLMDailyLimits: map[string]int{
			"analyze_recipe":                   3,
			"suggest_recipes_from_ingredients": 2,
		},
	}
}

func TestRateLimitService_AdmitUntilLimit(t *testing.T) {
	svc := services.NewRateLimitService(testRateLimitConfig(), newFakeUsageRepo())
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	for i := 1; i <= 3; i++ {
		res, err := svc.Admit(ctx, "user-1", "analyze_recipe", now)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, i, res.Current)
		assert.Equal(t, 3, res.Limit)
		assert.Equal(t, 3-i, res.Remaining)
	}

	res, err := svc.Admit(ctx, "user-1", "analyze_recipe", now)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 3, res.Current)
	assert.Equal(t, 0, res.Remaining)
}

func TestRateLimitService_DenialDoesNotConsume(t *testing.T) {
	repo := newFakeUsageRepo()
	svc := services.NewRateLimitService(testRateLimitConfig(), repo)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		_, err := svc.Admit(ctx, "user-1", "suggest_recipes_from_ingredients", now)
		require.NoError(t, err)
	}

	// Hammering a denied endpoint must not move the counter.
	for i := 0; i < 5; i++ {
		res, err := svc.Admit(ctx, "user-1", "suggest_recipes_from_ingredients", now)
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		assert.Equal(t, 2, res.Current)
	}
}

func TestRateLimitService_ConcurrentAdmitsHonorLimit(t *testing.T) {
	svc := services.NewRateLimitService(testRateLimitConfig(), newFakeUsageRepo())
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	const callers = 50
	var admitted atomic.Int64
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			res, err := svc.Admit(ctx, "user-1", "analyze_recipe", now)
			require.NoError(t, err)
			if res.Allowed {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	// Exactly the limit gets through no matter how many race for it.
	assert.Equal(t, int64(3), admitted.Load())

	res, err := svc.Admit(ctx, "user-1", "analyze_recipe", now)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 3, res.Current)
}

func TestRateLimitService_QuotasAreIndependent(t *testing.T) {
	svc := services.NewRateLimitService(testRateLimitConfig(), newFakeUsageRepo())
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	// Exhaust one endpoint for one user.
	for i := 0; i < 3; i++ {
		_, err := svc.Admit(ctx, "user-1", "analyze_recipe", now)
		require.NoError(t, err)
	}

	// Another user and another endpoint are untouched.
	res, err := svc.Admit(ctx, "user-2", "analyze_recipe", now)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = svc.Admit(ctx, "user-1", "suggest_recipes_from_ingredients", now)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRateLimitService_NewDayResetsQuota(t *testing.T) {
	svc := services.NewRateLimitService(testRateLimitConfig(), newFakeUsageRepo())
	ctx := context.Background()
	day1 := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 11, 0, 1, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := svc.Admit(ctx, "user-1", "analyze_recipe", day1)
		require.NoError(t, err)
	}
	res, err := svc.Admit(ctx, "user-1", "analyze_recipe", day1)
	require.NoError(t, err)
	require.False(t, res.Allowed)

	// Two minutes later it is a new UTC day and a fresh counter.
	res, err = svc.Admit(ctx, "user-1", "analyze_recipe", day2)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Current)
}

func TestRateLimitService_ResetAtIsNextUTCMidnight(t *testing.T) {
	svc := services.NewRateLimitService(testRateLimitConfig(), newFakeUsageRepo())
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	res, err := svc.Admit(context.Background(), "user-1", "analyze_recipe", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), res.ResetAt)
}

func TestRateLimitService_UsageStats(t *testing.T) {
	svc := services.NewRateLimitService(testRateLimitConfig(), newFakeUsageRepo())
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	_, err := svc.Admit(ctx, "user-1", "analyze_recipe", now)
	require.NoError(t, err)
	_, err = svc.Admit(ctx, "user-1", "analyze_recipe", now)
	require.NoError(t, err)

	stats, err := svc.UsageStats(ctx, "user-1", now)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", stats.Date)
	assert.Equal(t, 2, stats.Usage["analyze_recipe"].Calls)
	assert.Equal(t, 1, stats.Usage["analyze_recipe"].Remaining)

	// Endpoints never called today still show up with zero consumption.
	untouched, ok := stats.Usage["suggest_recipes_from_ingredients"]
	require.True(t, ok)
	assert.Equal(t, 0, untouched.Calls)
	assert.Equal(t, 2, untouched.Remaining)
}

func TestRateLimitService_UnknownEndpointUsesFallback(t *testing.T) {
	svc := services.NewRateLimitService(testRateLimitConfig(), newFakeUsageRepo())

	assert.Equal(t, config.DefaultLLMDailyLimit, svc.LimitFor("some_future_endpoint"))
	assert.Equal(t, 3, svc.LimitFor("analyze_recipe"))
}
