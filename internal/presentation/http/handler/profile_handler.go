package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/receipt-engine/internal/application/service"
	"github.com/sangkips/receipt-engine/internal/presentation/http/dto/request"
	"github.com/sangkips/receipt-engine/internal/presentation/http/dto/response"
	"github.com/sangkips/receipt-engine/pkg/pagination"
	"github.com/sangkips/receipt-engine/pkg/receipt"
)

// ProfileHandler handles print profile HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// List lists saved print profiles with pagination
func (h *ProfileHandler) List(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.profileService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Print profiles retrieved successfully", result)
}

// Get retrieves a print profile with its resolved settings
func (h *ProfileHandler) Get(c *gin.Context) {
	view, err := h.profileService.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Print profile retrieved successfully", view)
}

// Update replaces the saved settings of a print profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var settings receipt.Overrides
	if err := c.ShouldBindJSON(&settings); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.profileService.Save(c.Request.Context(), c.Param("name"), settings)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Print profile saved successfully", view)
}

// Reset restores a print profile to the defaults
func (h *ProfileHandler) Reset(c *gin.Context) {
	view, err := h.profileService.Reset(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Print profile reset to defaults", view)
}

// Delete deletes a print profile
func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.profileService.Delete(c.Request.Context(), c.Param("name")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Print profile deleted successfully", nil)
}

// Export returns a print profile as a flat key-value document
func (h *ProfileHandler) Export(c *gin.Context) {
	var req request.ExportProfileRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	doc, err := h.profileService.Export(c.Request.Context(), c.Param("name"), req.Resolved)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Print profile exported successfully", doc)
}

// Import saves a print profile from a flat key-value document
func (h *ProfileHandler) Import(c *gin.Context) {
	var doc map[string]string
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.BadRequest(c, "Invalid request body: values must be strings")
		return
	}

	view, err := h.profileService.Import(c.Request.Context(), c.Param("name"), doc)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Print profile imported successfully", view)
}
