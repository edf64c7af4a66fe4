package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
)

// FamilyHandler handles family profile requests.
type FamilyHandler struct {
	familyService portssvc.FamilySvcFacade
}

// NewFamilyHandler creates a new FamilyHandler.
func NewFamilyHandler(fs portssvc.FamilySvcFacade) *FamilyHandler {
	return &FamilyHandler{familyService: fs}
}

// registerFamilyRoutes sets up the family profile routes.
func registerFamilyRoutes(rg *gin.RouterGroup, fs portssvc.FamilySvcFacade) {
	h := NewFamilyHandler(fs)

	family := rg.Group("/family")
	{
		family.GET("", h.GetFamily)
		family.PUT("", h.ReplaceFamily)
		family.POST("/members", h.AddMember)
		family.PUT("/members/:memberID", h.UpdateMember)
		family.DELETE("/members/:memberID", h.DeleteMember)
	}
}

// GetFamily godoc
// @Summary Get family profile
// @Tags family
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.FamilyProfileResponse
// @Router /family [get]
func (h *FamilyHandler) GetFamily(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	members, err := h.familyService.GetFamily(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load family profile")
		return
	}
	c.JSON(http.StatusOK, dto.FamilyProfileResponse{Members: members})
}

// ReplaceFamily godoc
// @Summary Replace family profile
// @Description Swaps the entire family profile in one call.
// @Tags family
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param family body dto.ReplaceFamilyRequest true "Full member list"
// @Success 200 {object} dto.FamilyProfileResponse
// @Failure 400 {object} ErrorResponse
// @Router /family [put]
func (h *FamilyHandler) ReplaceFamily(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.ReplaceFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	members, err := h.familyService.ReplaceFamily(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to replace family profile")
		return
	}
	c.JSON(http.StatusOK, dto.FamilyProfileResponse{Members: members})
}

// AddMember godoc
// @Summary Add family member
// @Tags family
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param member body dto.FamilyMemberRequest true "Member"
// @Success 201 {object} models.FamilyMember
// @Failure 400 {object} ErrorResponse
// @Router /family/members [post]
func (h *FamilyHandler) AddMember(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.FamilyMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	member, err := h.familyService.AddMember(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to add family member")
		return
	}
	c.JSON(http.StatusCreated, member)
}

// UpdateMember godoc
// @Summary Update family member
// @Tags family
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "Member ID"
// @Param member body dto.FamilyMemberRequest true "Member"
// @Success 200 {object} models.FamilyMember
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /family/members/{memberID} [put]
func (h *FamilyHandler) UpdateMember(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.FamilyMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	member, err := h.familyService.UpdateMember(c.Request.Context(), userID, c.Param("memberID"), req)
	if err != nil {
		respondError(c, err, "Failed to update family member")
		return
	}
	c.JSON(http.StatusOK, member)
}

// DeleteMember godoc
// @Summary Delete family member
// @Tags family
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "Member ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /family/members/{memberID} [delete]
func (h *FamilyHandler) DeleteMember(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.familyService.DeleteMember(c.Request.Context(), userID, c.Param("memberID")); err != nil {
		respondError(c, err, "Failed to delete family member")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
