package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
)

// MealPlanHandler handles weekly meal plan requests.
type MealPlanHandler struct {
	mealPlanService portssvc.MealPlanSvcFacade
}

// NewMealPlanHandler creates a new MealPlanHandler.
func NewMealPlanHandler(ms portssvc.MealPlanSvcFacade) *MealPlanHandler {
	return &MealPlanHandler{mealPlanService: ms}
}

// registerMealPlanRoutes sets up the meal plan routes. Shopping list
// generation extracts ingredients with the model, so it is metered.
func registerMealPlanRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewMealPlanHandler(services.MealPlan)
	extractQuota := middleware.LLMQuotaMiddleware(services.RateLimiter, EndpointExtractIngredients)

	plans := rg.Group("/meal-plans")
	{
		plans.GET("", h.GetWeekPlan)
		plans.POST("/meals", h.AddMeal)
		plans.PATCH("/meals/:mealID", h.UpdateMeal)
		plans.DELETE("/meals/:mealID", h.RemoveMeal)
		plans.POST("/shopping-list", extractQuota, h.GenerateShoppingList)
	}
}

// dateParam returns the date query parameter, defaulting to today (UTC).
func dateParam(c *gin.Context) string {
	if date := c.Query("date"); date != "" {
		return date
	}
	return time.Now().UTC().Format("2006-01-02")
}

// GetWeekPlan godoc
// @Summary Get weekly meal plan
// @Description Returns the plan for the week containing the given date, creating an empty plan when none exists.
// @Tags meal-plans
// @Produce json
// @Security BearerAuth
// @Param date query string false "Any date in the week (YYYY-MM-DD, default today)"
// @Success 200 {object} dto.MealPlanResponse
// @Failure 400 {object} ErrorResponse
// @Router /meal-plans [get]
func (h *MealPlanHandler) GetWeekPlan(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	plan, err := h.mealPlanService.GetWeekPlan(c.Request.Context(), userID, dateParam(c))
	if err != nil {
		respondError(c, err, "Failed to load meal plan")
		return
	}
	c.JSON(http.StatusOK, dto.MealPlanResponse{Plan: plan})
}

// AddMeal godoc
// @Summary Schedule a recipe
// @Tags meal-plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meal body dto.AddMealRequest true "Meal"
// @Success 201 {object} models.PlannedMeal
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /meal-plans/meals [post]
func (h *MealPlanHandler) AddMeal(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.AddMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	meal, err := h.mealPlanService.AddMeal(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to add meal")
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// UpdateMeal godoc
// @Summary Update a planned meal
// @Tags meal-plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param mealID path int true "Meal ID"
// @Param meal body dto.UpdateMealRequest true "Fields to update"
// @Success 200 {object} models.PlannedMeal
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /meal-plans/meals/{mealID} [patch]
func (h *MealPlanHandler) UpdateMeal(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	mealID, err := strconv.ParseInt(c.Param("mealID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid meal ID"})
		return
	}

	var req dto.UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	meal, err := h.mealPlanService.UpdateMeal(c.Request.Context(), userID, mealID, req)
	if err != nil {
		respondError(c, err, "Failed to update meal")
		return
	}
	c.JSON(http.StatusOK, meal)
}

// RemoveMeal godoc
// @Summary Remove a planned meal
// @Tags meal-plans
// @Produce json
// @Security BearerAuth
// @Param mealID path int true "Meal ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /meal-plans/meals/{mealID} [delete]
func (h *MealPlanHandler) RemoveMeal(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	mealID, err := strconv.ParseInt(c.Param("mealID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid meal ID"})
		return
	}

	if err := h.mealPlanService.RemoveMeal(c.Request.Context(), userID, mealID); err != nil {
		respondError(c, err, "Failed to remove meal")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal removed"})
}

// GenerateShoppingList godoc
// @Summary Generate shopping list from the week's plan
// @Description Extracts and merges ingredients from every recipe planned in the week.
// @Tags meal-plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date query string false "Any date in the week (YYYY-MM-DD, default today)"
// @Param options body dto.PlanShoppingListRequest false "List options"
// @Success 201 {object} models.ShoppingList
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} dto.RateLimitExceededResponse
// @Router /meal-plans/shopping-list [post]
func (h *MealPlanHandler) GenerateShoppingList(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.PlanShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	list, err := h.mealPlanService.GenerateShoppingList(c.Request.Context(), userID, dateParam(c), req)
	if err != nil {
		respondError(c, err, "Failed to generate shopping list")
		return
	}
	c.JSON(http.StatusCreated, list)
}
