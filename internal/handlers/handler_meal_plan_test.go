package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/handlers"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// --- Mock MealPlanService ---
type MockMealPlanService struct {
	mock.Mock
}

func (m *MockMealPlanService) GetWeekPlan(ctx context.Context, userID, dateStr string) (*models.MealPlan, error) {
	args := m.Called(ctx, userID, dateStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) AddMeal(ctx context.Context, userID string, req dto.AddMealRequest) (*models.PlannedMeal, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlannedMeal), args.Error(1)
}

func (m *MockMealPlanService) UpdateMeal(ctx context.Context, userID string, mealID int64, req dto.UpdateMealRequest) (*models.PlannedMeal, error) {
	args := m.Called(ctx, userID, mealID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlannedMeal), args.Error(1)
}

func (m *MockMealPlanService) RemoveMeal(ctx context.Context, userID string, mealID int64) error {
	args := m.Called(ctx, userID, mealID)
	return args.Error(0)
}

func (m *MockMealPlanService) GenerateShoppingList(ctx context.Context, userID, dateStr string, req dto.PlanShoppingListRequest) (*models.ShoppingList, error) {
	args := m.Called(ctx, userID, dateStr, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShoppingList), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.MealPlanSvcFacade = (*MockMealPlanService)(nil)

func mealPlanRouter(svc *MockMealPlanService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewMealPlanHandler(svc)

	// Mimic the real route registration with a stubbed identity.
	plans := r.Group("/api/meal-plans", func(c *gin.Context) {
		c.Set("userID", "user-1")
	})
	plans.GET("", h.GetWeekPlan)
	plans.DELETE("/meals/:mealID", h.RemoveMeal)
	return r
}

func TestMealPlanHandler_GetWeekPlan(t *testing.T) {
	svc := new(MockMealPlanService)
	r := mealPlanRouter(svc)

	dish := "Lentil Soup"
	svc.On("GetWeekPlan", mock.Anything, "user-1", "2026-03-12").Return(&models.MealPlan{
		PlanID:    "plan-1",
		WeekStart: "2026-03-09",
		Meals: []models.PlannedMeal{
			{ID: 7, PlanID: "plan-1", Date: "2026-03-12", MealType: models.MealDinner, Servings: 4, DishName: &dish},
		},
	}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/meal-plans?date=2026-03-12", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body dto.MealPlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Plan)
	assert.Equal(t, "plan-1", body.Plan.PlanID)
	assert.Equal(t, "2026-03-09", body.Plan.WeekStart)
	require.Len(t, body.Plan.Meals, 1)
	assert.Equal(t, models.MealDinner, body.Plan.Meals[0].MealType)
	svc.AssertExpectations(t)
}

func TestMealPlanHandler_GetWeekPlan_BadDate(t *testing.T) {
	svc := new(MockMealPlanService)
	r := mealPlanRouter(svc)

	svc.On("GetWeekPlan", mock.Anything, "user-1", "not-a-date").Return(nil, apperrors.ErrValidation)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/meal-plans?date=not-a-date", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMealPlanHandler_RemoveMeal_NotFound(t *testing.T) {
	svc := new(MockMealPlanService)
	r := mealPlanRouter(svc)

	svc.On("RemoveMeal", mock.Anything, "user-1", int64(99)).Return(apperrors.ErrNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/meal-plans/meals/99", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
