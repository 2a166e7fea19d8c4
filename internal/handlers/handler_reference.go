package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/courier_ledger/internal/core/ports/services"
	"github.com/SscSPs/courier_ledger/internal/dto"
	"github.com/SscSPs/courier_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// referenceHandler serves master data: office centers, locations, customers,
// expense categories, vehicle types and package types.
type referenceHandler struct {
	referenceService portssvc.ReferenceSvcFacade
}

func registerReferenceRoutes(rg *gin.RouterGroup, referenceService portssvc.ReferenceSvcFacade) {
	h := &referenceHandler{referenceService: referenceService}

	refs := rg.Group("/references/:kind")
	{
		refs.POST("", h.createReference)
		refs.GET("", h.listReferences)
		refs.DELETE("/:code", h.deactivateReference)
	}
}

// createReference godoc
// @Summary Create master data
// @Tags references
// @Accept  json
// @Produce  json
// @Param   kind path string true "Reference kind" Enums(office_center, location, customer, expense_category, vehicle_type, package_type)
// @Param   reference body dto.CreateReferenceRequest true "Code and name"
// @Success 201 {object} dto.ReferenceResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown kind"
// @Failure 409 {object} map[string]string "Code or name already in use"
// @Failure 500 {object} map[string]string "Failed to create reference"
// @Security BearerAuth
// @Router /references/{kind} [post]
func (h *referenceHandler) createReference(c *gin.Context) {
	kind := domain.ReferenceKind(c.Param("kind"))
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("kind", string(kind)))
	var req dto.CreateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReference", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	ref, err := h.referenceService.CreateReference(c.Request.Context(), kind, req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create reference")
		return
	}
	c.JSON(http.StatusCreated, dto.ToReferenceResponse(*ref))
}

// listReferences godoc
// @Summary List master data
// @Tags references
// @Produce  json
// @Param   kind path string true "Reference kind"
// @Param   includeInactive query bool false "Include deactivated entries"
// @Success 200 {array} dto.ReferenceResponse
// @Failure 400 {object} map[string]string "Unknown kind"
// @Failure 500 {object} map[string]string "Failed to list references"
// @Security BearerAuth
// @Router /references/{kind} [get]
func (h *referenceHandler) listReferences(c *gin.Context) {
	kind := domain.ReferenceKind(c.Param("kind"))
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("kind", string(kind)))

	refs, err := h.referenceService.ListReferences(c.Request.Context(), kind, c.Query("includeInactive") == "true")
	if err != nil {
		respondWithError(c, logger, err, "Failed to list references")
		return
	}
	c.JSON(http.StatusOK, dto.ToListReferenceResponse(refs))
}

// deactivateReference godoc
// @Summary Deactivate master data
// @Tags references
// @Param   kind path string true "Reference kind"
// @Param   code path string true "Reference code"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Unknown kind"
// @Failure 404 {object} map[string]string "Reference not found"
// @Failure 500 {object} map[string]string "Failed to deactivate reference"
// @Security BearerAuth
// @Router /references/{kind}/{code} [delete]
func (h *referenceHandler) deactivateReference(c *gin.Context) {
	kind := domain.ReferenceKind(c.Param("kind"))
	code := c.Param("code")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("kind", string(kind)),
		slog.String("code", code))

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.referenceService.DeactivateReference(c.Request.Context(), kind, code, userID); err != nil {
		respondWithError(c, logger, err, "Failed to deactivate reference")
		return
	}
	c.Status(http.StatusNoContent)
}
