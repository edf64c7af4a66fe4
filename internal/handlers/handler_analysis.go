package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// Metered endpoint names. Each one is a daily quota bucket.
const (
	EndpointAnalyzeRecipe      = "analyze_recipe"
	EndpointAnalyzeIngredients = "analyze_ingredients"
	EndpointAnalyzeImage       = "analyze_ingredient_image"
	EndpointSuggestRecipes     = "suggest_recipes_from_ingredients"
	EndpointExtractIngredients = "extract_ingredients_from_recipes"
)

const maxLabelImageBytes = 8 << 20

// AnalysisHandler handles the model-backed analysis requests.
type AnalysisHandler struct {
	aiService     portssvc.AISvcFacade
	familyService portssvc.FamilySvcFacade
	pantryService portssvc.PantrySvcFacade
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(ai portssvc.AISvcFacade, fs portssvc.FamilySvcFacade, ps portssvc.PantrySvcFacade) *AnalysisHandler {
	return &AnalysisHandler{
		aiService:     ai,
		familyService: fs,
		pantryService: ps,
	}
}

// registerAnalysisRoutes sets up the metered analysis routes. Each route
// spends from its own daily quota bucket; the quota middleware runs after
// auth and before the handler.
func registerAnalysisRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewAnalysisHandler(services.AI, services.Family, services.Pantry)
	quota := func(endpoint string) gin.HandlerFunc {
		return middleware.LLMQuotaMiddleware(services.RateLimiter, endpoint)
	}

	rg.POST("/recipe/analyze", quota(EndpointAnalyzeRecipe), h.AnalyzeRecipe)
	rg.POST("/ingredients/analyze", quota(EndpointAnalyzeIngredients), h.AnalyzeIngredients)
	rg.POST("/scan/ingredient-image", quota(EndpointAnalyzeImage), h.AnalyzeIngredientImage)
	rg.POST("/recipes/suggest", quota(EndpointSuggestRecipes), h.SuggestRecipes)
	rg.POST("/recipes/extract-ingredients", quota(EndpointExtractIngredients), h.ExtractIngredients)
}

// familyFor returns the profile sent with the request, or the stored profile
// when the request leaves it out.
func (h *AnalysisHandler) familyFor(c *gin.Context, requested []models.FamilyMember) ([]models.FamilyMember, error) {
	if len(requested) > 0 {
		return requested, nil
	}
	userID, _ := middleware.GetUserIDFromContext(c)
	return h.familyService.GetFamily(c.Request.Context(), userID)
}

// AnalyzeRecipe godoc
// @Summary Analyze recipe for the family
// @Description Produces a per-member safety verdict for recipe text.
// @Tags analysis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recipe body dto.RecipeAnalysisRequest true "Recipe text"
// @Success 200 {object} dto.RecipeAnalysis
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} dto.RateLimitExceededResponse
// @Router /recipe/analyze [post]
func (h *AnalysisHandler) AnalyzeRecipe(c *gin.Context) {
	var req dto.RecipeAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	family, err := h.familyFor(c, req.FamilyProfile)
	if err != nil {
		respondError(c, err, "Failed to load family profile")
		return
	}

	analysis, err := h.aiService.AnalyzeRecipe(c.Request.Context(), req.RecipeText, family)
	if err != nil {
		respondError(c, err, "Recipe analysis failed")
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// AnalyzeIngredients godoc
// @Summary Analyze ingredient list for the family
// @Tags analysis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ingredients body dto.AnalyzeIngredientsRequest true "Ingredients"
// @Success 200 {object} dto.IngredientAnalysis
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} dto.RateLimitExceededResponse
// @Router /ingredients/analyze [post]
func (h *AnalysisHandler) AnalyzeIngredients(c *gin.Context) {
	var req dto.AnalyzeIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	family, err := h.familyFor(c, nil)
	if err != nil {
		respondError(c, err, "Failed to load family profile")
		return
	}

	analysis, err := h.aiService.AnalyzeIngredients(c.Request.Context(), req.Ingredients, family)
	if err != nil {
		respondError(c, err, "Ingredient analysis failed")
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// AnalyzeIngredientImage godoc
// @Summary Analyze a product label photo
// @Description Reads a label image and checks the found ingredients against the family.
// @Tags analysis
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Label image"
// @Success 200 {object} dto.IngredientAnalysis
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} dto.RateLimitExceededResponse
// @Router /scan/ingredient-image [post]
func (h *AnalysisHandler) AnalyzeIngredientImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Image file required"})
		return
	}
	if fileHeader.Size > maxLabelImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read image"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(io.LimitReader(file, maxLabelImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read image"})
		return
	}

	family, err := h.familyFor(c, nil)
	if err != nil {
		respondError(c, err, "Failed to load family profile")
		return
	}

	analysis, err := h.aiService.AnalyzeIngredientImage(c.Request.Context(), imageData, fileHeader.Header.Get("Content-Type"), family)
	if err != nil {
		respondError(c, err, "Image analysis failed")
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// SuggestRecipes godoc
// @Summary Suggest recipes from ingredients
// @Description Proposes dishes from the given ingredients, falling back to the pantry when none are sent.
// @Tags analysis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ingredients body dto.AnalyzeIngredientsRequest false "Ingredients"
// @Success 200 {object} dto.RecipeSuggestions
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} dto.RateLimitExceededResponse
// @Router /recipes/suggest [post]
func (h *AnalysisHandler) SuggestRecipes(c *gin.Context) {
	var req struct {
		Ingredients []string `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	ingredients := req.Ingredients
	if len(ingredients) == 0 {
		items, err := h.pantryService.ListItems(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, "Failed to load pantry")
			return
		}
		for _, item := range items {
			ingredients = append(ingredients, item.Name)
		}
	}
	if len(ingredients) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No ingredients provided and pantry is empty"})
		return
	}

	family, err := h.familyFor(c, nil)
	if err != nil {
		respondError(c, err, "Failed to load family profile")
		return
	}

	suggestions, err := h.aiService.SuggestRecipes(c.Request.Context(), ingredients, family)
	if err != nil {
		respondError(c, err, "Recipe suggestion failed")
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

// ExtractIngredients godoc
// @Summary Extract ingredients from recipe texts
// @Tags analysis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recipes body dto.ExtractIngredientsRequest true "Recipe texts"
// @Success 200 {object} dto.ExtractedIngredientsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} dto.RateLimitExceededResponse
// @Router /recipes/extract-ingredients [post]
func (h *AnalysisHandler) ExtractIngredients(c *gin.Context) {
	var req dto.ExtractIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	ingredients, err := h.aiService.ExtractIngredients(c.Request.Context(), req.Recipes)
	if err != nil {
		respondError(c, err, "Ingredient extraction failed")
		return
	}
	c.JSON(http.StatusOK, dto.ExtractedIngredientsResponse{Ingredients: ingredients})
}
