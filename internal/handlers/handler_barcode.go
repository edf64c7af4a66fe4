package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
)

// BarcodeHandler handles scanned product lookups.
type BarcodeHandler struct {
	barcodeService portssvc.BarcodeSvcFacade
}

// NewBarcodeHandler creates a new BarcodeHandler.
func NewBarcodeHandler(bs portssvc.BarcodeSvcFacade) *BarcodeHandler {
	return &BarcodeHandler{barcodeService: bs}
}

// registerBarcodeRoutes sets up the barcode routes. The plain lookup hits an
// external product database, needs no account, and is not metered, so it
// lives on the optional-auth group. The analysis route runs the ingredient
// safety check against the caller's family and stays authenticated and
// metered.
func registerBarcodeRoutes(rg, public *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewBarcodeHandler(services.Barcode)
	analyzeQuota := middleware.LLMQuotaMiddleware(services.RateLimiter, EndpointAnalyzeIngredients)

	public.GET("/barcode/:code", h.LookupProduct)

	barcode := rg.Group("/barcode")
	{
		barcode.POST("/:code/analyze", analyzeQuota, h.AnalyzeProduct)
	}
}

// LookupProduct godoc
// @Summary Look up a product by barcode
// @Description Public product lookup. A token is accepted but not required.
// @Tags barcode
// @Produce json
// @Param code path string true "Barcode"
// @Success 200 {object} dto.BarcodeProduct
// @Failure 404 {object} ErrorResponse
// @Router /barcode/{code} [get]
func (h *BarcodeHandler) LookupProduct(c *gin.Context) {
	product, err := h.barcodeService.LookupProduct(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "Product lookup failed")
		return
	}
	c.JSON(http.StatusOK, product)
}

// AnalyzeProduct godoc
// @Summary Analyze a scanned product for the family
// @Description Looks up the product and checks its ingredient list against every family member's conditions.
// @Tags barcode
// @Produce json
// @Security BearerAuth
// @Param code path string true "Barcode"
// @Success 200 {object} dto.BarcodeAnalysisResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} dto.RateLimitExceededResponse
// @Router /barcode/{code}/analyze [post]
func (h *BarcodeHandler) AnalyzeProduct(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	analysis, err := h.barcodeService.AnalyzeProduct(c.Request.Context(), userID, c.Param("code"))
	if err != nil {
		respondError(c, err, "Product analysis failed")
		return
	}
	c.JSON(http.StatusOK, analysis)
}
