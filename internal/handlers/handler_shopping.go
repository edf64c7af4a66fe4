package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
)

// ShoppingHandler handles shopping list requests.
type ShoppingHandler struct {
	shoppingService portssvc.ShoppingSvcFacade
}

// NewShoppingHandler creates a new ShoppingHandler.
func NewShoppingHandler(ss portssvc.ShoppingSvcFacade) *ShoppingHandler {
	return &ShoppingHandler{shoppingService: ss}
}

// registerShoppingRoutes sets up the shopping list routes. Generation from
// recipes runs an ingredient extraction, so that route is metered.
func registerShoppingRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewShoppingHandler(services.Shopping)
	extractQuota := middleware.LLMQuotaMiddleware(services.RateLimiter, EndpointExtractIngredients)

	shopping := rg.Group("/shopping")
	{
		shopping.GET("", h.ListLists)
		shopping.POST("", h.CreateList)
		shopping.POST("/generate", extractQuota, h.GenerateFromRecipes)
		shopping.GET("/:listID", h.GetList)
		shopping.POST("/:listID/complete", h.CompleteList)
		shopping.DELETE("/:listID", h.DeleteList)
		shopping.POST("/:listID/items", h.AddItem)
		shopping.PATCH("/:listID/items/:itemID", h.UpdateItem)
		shopping.DELETE("/:listID/items/:itemID", h.DeleteItem)
	}
}

// ListLists godoc
// @Summary List shopping lists
// @Tags shopping
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ShoppingListsResponse
// @Router /shopping [get]
func (h *ShoppingHandler) ListLists(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	lists, err := h.shoppingService.ListLists(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list shopping lists")
		return
	}
	c.JSON(http.StatusOK, dto.ShoppingListsResponse{Lists: lists, Total: len(lists)})
}

// CreateList godoc
// @Summary Create shopping list
// @Tags shopping
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param list body dto.CreateShoppingListRequest true "List"
// @Success 201 {object} models.ShoppingList
// @Failure 400 {object} ErrorResponse
// @Router /shopping [post]
func (h *ShoppingHandler) CreateList(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.CreateShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	list, err := h.shoppingService.CreateList(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create shopping list")
		return
	}
	c.JSON(http.StatusCreated, list)
}

// GenerateFromRecipes godoc
// @Summary Generate shopping list from saved recipes
// @Description Extracts and merges ingredients from the selected recipes.
// @Tags shopping
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param generate body dto.GenerateShoppingListRequest true "Recipes"
// @Success 201 {object} models.ShoppingList
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} dto.RateLimitExceededResponse
// @Router /shopping/generate [post]
func (h *ShoppingHandler) GenerateFromRecipes(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.GenerateShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	list, err := h.shoppingService.GenerateFromRecipes(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to generate shopping list")
		return
	}
	c.JSON(http.StatusCreated, list)
}

// GetList godoc
// @Summary Get shopping list
// @Tags shopping
// @Produce json
// @Security BearerAuth
// @Param listID path string true "List ID"
// @Success 200 {object} models.ShoppingList
// @Failure 404 {object} ErrorResponse
// @Router /shopping/{listID} [get]
func (h *ShoppingHandler) GetList(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	list, err := h.shoppingService.GetList(c.Request.Context(), userID, c.Param("listID"))
	if err != nil {
		respondError(c, err, "Failed to load shopping list")
		return
	}
	c.JSON(http.StatusOK, list)
}

// CompleteList godoc
// @Summary Mark shopping list completed
// @Tags shopping
// @Produce json
// @Security BearerAuth
// @Param listID path string true "List ID"
// @Success 200 {object} models.ShoppingList
// @Failure 404 {object} ErrorResponse
// @Router /shopping/{listID}/complete [post]
func (h *ShoppingHandler) CompleteList(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	list, err := h.shoppingService.CompleteList(c.Request.Context(), userID, c.Param("listID"))
	if err != nil {
		respondError(c, err, "Failed to complete shopping list")
		return
	}
	c.JSON(http.StatusOK, list)
}

// DeleteList godoc
// @Summary Delete shopping list
// @Tags shopping
// @Produce json
// @Security BearerAuth
// @Param listID path string true "List ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /shopping/{listID} [delete]
func (h *ShoppingHandler) DeleteList(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.shoppingService.DeleteList(c.Request.Context(), userID, c.Param("listID")); err != nil {
		respondError(c, err, "Failed to delete shopping list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "List deleted"})
}

// AddItem godoc
// @Summary Add item to shopping list
// @Tags shopping
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param listID path string true "List ID"
// @Param item body dto.ShoppingItemRequest true "Item"
// @Success 201 {object} models.ShoppingItem
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shopping/{listID}/items [post]
func (h *ShoppingHandler) AddItem(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.ShoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	item, err := h.shoppingService.AddItem(c.Request.Context(), userID, c.Param("listID"), req)
	if err != nil {
		respondError(c, err, "Failed to add item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem godoc
// @Summary Update shopping list item
// @Tags shopping
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param listID path string true "List ID"
// @Param itemID path int true "Item ID"
// @Param item body dto.UpdateShoppingItemRequest true "Fields to update"
// @Success 200 {object} models.ShoppingItem
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shopping/{listID}/items/{itemID} [patch]
func (h *ShoppingHandler) UpdateItem(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid item ID"})
		return
	}

	var req dto.UpdateShoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	item, err := h.shoppingService.UpdateItem(c.Request.Context(), userID, c.Param("listID"), itemID, req)
	if err != nil {
		respondError(c, err, "Failed to update item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem godoc
// @Summary Delete shopping list item
// @Tags shopping
// @Produce json
// @Security BearerAuth
// @Param listID path string true "List ID"
// @Param itemID path int true "Item ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /shopping/{listID}/items/{itemID} [delete]
func (h *ShoppingHandler) DeleteItem(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid item ID"})
		return
	}

	if err := h.shoppingService.DeleteItem(c.Request.Context(), userID, c.Param("listID"), itemID); err != nil {
		respondError(c, err, "Failed to delete item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}
