package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
)

// RecipeHandler handles saved recipe requests.
type RecipeHandler struct {
	recipeService portssvc.RecipeSvcFacade
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(rs portssvc.RecipeSvcFacade) *RecipeHandler {
	return &RecipeHandler{recipeService: rs}
}

// registerRecipeRoutes sets up the saved recipe routes.
func registerRecipeRoutes(rg *gin.RouterGroup, rs portssvc.RecipeSvcFacade) {
	h := NewRecipeHandler(rs)

	recipes := rg.Group("/recipes")
	{
		recipes.POST("", h.SaveRecipe)
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:recipeID", h.GetRecipe)
		recipes.PATCH("/:recipeID", h.UpdateRecipe)
		recipes.DELETE("/:recipeID", h.DeleteRecipe)
	}
}

// SaveRecipe godoc
// @Summary Save analyzed recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recipe body dto.SaveRecipeRequest true "Recipe"
// @Success 201 {object} models.SavedRecipe
// @Failure 400 {object} ErrorResponse
// @Router /recipes [post]
func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	recipe, err := h.recipeService.SaveRecipe(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to save recipe")
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// ListRecipes godoc
// @Summary List saved recipes
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param favorites query bool false "Favorites only"
// @Param tag query string false "Filter by tag"
// @Success 200 {object} dto.SavedRecipesResponse
// @Router /recipes [get]
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	favoritesOnly := c.Query("favorites") == "true"
	tag := c.Query("tag")

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), userID, favoritesOnly, tag)
	if err != nil {
		respondError(c, err, "Failed to list recipes")
		return
	}
	c.JSON(http.StatusOK, dto.SavedRecipesResponse{Recipes: recipes, Total: len(recipes)})
}

// GetRecipe godoc
// @Summary Get saved recipe
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param recipeID path string true "Recipe ID"
// @Success 200 {object} models.SavedRecipe
// @Failure 404 {object} ErrorResponse
// @Router /recipes/{recipeID} [get]
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), userID, c.Param("recipeID"))
	if err != nil {
		respondError(c, err, "Failed to load recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// UpdateRecipe godoc
// @Summary Update saved recipe
// @Description Patches favorite flag, notes and tags.
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recipeID path string true "Recipe ID"
// @Param recipe body dto.UpdateRecipeRequest true "Fields to update"
// @Success 200 {object} models.SavedRecipe
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /recipes/{recipeID} [patch]
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, c.Param("recipeID"), req)
	if err != nil {
		respondError(c, err, "Failed to update recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe godoc
// @Summary Delete saved recipe
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param recipeID path string true "Recipe ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /recipes/{recipeID} [delete]
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, c.Param("recipeID")); err != nil {
		respondError(c, err, "Failed to delete recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}
