package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
)

// PantryHandler handles pantry inventory requests.
type PantryHandler struct {
	pantryService portssvc.PantrySvcFacade
}

// NewPantryHandler creates a new PantryHandler.
func NewPantryHandler(ps portssvc.PantrySvcFacade) *PantryHandler {
	return &PantryHandler{pantryService: ps}
}

// registerPantryRoutes sets up the pantry routes.
func registerPantryRoutes(rg *gin.RouterGroup, ps portssvc.PantrySvcFacade) {
	h := NewPantryHandler(ps)

	pantry := rg.Group("/pantry")
	{
		pantry.GET("", h.ListItems)
		pantry.POST("", h.AddItem)
		pantry.DELETE("/:itemID", h.RemoveItem)
		pantry.DELETE("", h.ClearPantry)
	}
}

// ListItems godoc
// @Summary List pantry items
// @Tags pantry
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PantryResponse
// @Router /pantry [get]
func (h *PantryHandler) ListItems(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	items, err := h.pantryService.ListItems(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load pantry")
		return
	}
	c.JSON(http.StatusOK, dto.PantryResponse{Items: items, Total: len(items)})
}

// AddItem godoc
// @Summary Add pantry item
// @Tags pantry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body dto.CreatePantryItemRequest true "Item"
// @Success 201 {object} models.PantryItem
// @Failure 400 {object} ErrorResponse
// @Router /pantry [post]
func (h *PantryHandler) AddItem(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.CreatePantryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	item, err := h.pantryService.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to add pantry item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// RemoveItem godoc
// @Summary Remove pantry item
// @Tags pantry
// @Produce json
// @Security BearerAuth
// @Param itemID path int true "Item ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /pantry/{itemID} [delete]
func (h *PantryHandler) RemoveItem(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid item ID"})
		return
	}

	if err := h.pantryService.RemoveItem(c.Request.Context(), userID, itemID); err != nil {
		respondError(c, err, "Failed to remove pantry item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

// ClearPantry godoc
// @Summary Clear pantry
// @Tags pantry
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /pantry [delete]
func (h *PantryHandler) ClearPantry(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.pantryService.ClearPantry(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Failed to clear pantry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pantry cleared"})
}
