package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finreg/adjustments_app/internal/apperrors"
	portssvc "github.com/finreg/adjustments_app/internal/core/ports/services"
	"github.com/finreg/adjustments_app/internal/dto"
	"github.com/finreg/adjustments_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adjustmentTypeHandler handles HTTP requests for adjustment type reference data.
type adjustmentTypeHandler struct {
	typeService portssvc.AdjustmentTypeSvcFacade
}

// newAdjustmentTypeHandler creates a new adjustmentTypeHandler.
func newAdjustmentTypeHandler(typeService portssvc.AdjustmentTypeSvcFacade) *adjustmentTypeHandler {
	return &adjustmentTypeHandler{
		typeService: typeService,
	}
}

// createType godoc
// @Summary Create an adjustment type
// @Tags adjustment-types
// @Accept  json
// @Produce  json
// @Param   type body dto.CreateAdjustmentTypeRequest true "Type details"
// @Success 201 {object} dto.AdjustmentTypeResponse "The created type"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Type name already exists"
// @Router /adjustment-types [post]
func (h *adjustmentTypeHandler) createType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAdjustmentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createType", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	adjustmentType, err := h.typeService.CreateType(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "An adjustment type with this name already exists"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to create adjustment type", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create adjustment type"})
		return
	}

	logger.Info("Adjustment type created", slog.String("type_id", adjustmentType.TypeID))
	c.JSON(http.StatusCreated, dto.ToAdjustmentTypeResponse(adjustmentType))
}

// getType godoc
// @Summary Get an adjustment type
// @Tags adjustment-types
// @Produce  json
// @Param   typeID path string true "Type ID"
// @Success 200 {object} dto.AdjustmentTypeResponse "The type"
// @Failure 404 {object} map[string]string "Type not found"
// @Router /adjustment-types/{typeID} [get]
func (h *adjustmentTypeHandler) getType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	typeID := c.Param("typeID")

	adjustmentType, err := h.typeService.GetTypeByID(c.Request.Context(), typeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Adjustment type not found"})
			return
		}
		logger.Error("Failed to get adjustment type", slog.String("error", err.Error()), slog.String("type_id", typeID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve adjustment type"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAdjustmentTypeResponse(adjustmentType))
}

// listTypes godoc
// @Summary List adjustment types
// @Tags adjustment-types
// @Produce  json
// @Param   activeOnly query bool false "Only active types"
// @Success 200 {array} dto.AdjustmentTypeResponse "Adjustment types"
// @Router /adjustment-types [get]
func (h *adjustmentTypeHandler) listTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	activeOnly := c.Query("activeOnly") == "true"

	types, err := h.typeService.ListTypes(c.Request.Context(), activeOnly)
	if err != nil {
		logger.Error("Failed to list adjustment types", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list adjustment types"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAdjustmentTypeResponses(types))
}

// updateType godoc
// @Summary Update an adjustment type
// @Tags adjustment-types
// @Accept  json
// @Produce  json
// @Param   typeID path string true "Type ID"
// @Param   type body dto.UpdateAdjustmentTypeRequest true "Fields to update"
// @Success 200 {object} dto.AdjustmentTypeResponse "The updated type"
// @Failure 404 {object} map[string]string "Type not found"
// @Router /adjustment-types/{typeID} [put]
func (h *adjustmentTypeHandler) updateType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	typeID := c.Param("typeID")

	var req dto.UpdateAdjustmentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateType", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	adjustmentType, err := h.typeService.UpdateType(c.Request.Context(), typeID, req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Adjustment type not found"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to update adjustment type", slog.String("error", err.Error()), slog.String("type_id", typeID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update adjustment type"})
		return
	}

	logger.Info("Adjustment type updated", slog.String("type_id", typeID))
	c.JSON(http.StatusOK, dto.ToAdjustmentTypeResponse(adjustmentType))
}

// deactivateType godoc
// @Summary Deactivate an adjustment type
// @Tags adjustment-types
// @Produce  json
// @Param   typeID path string true "Type ID"
// @Success 204 "Type deactivated"
// @Failure 404 {object} map[string]string "Type not found"
// @Router /adjustment-types/{typeID} [delete]
func (h *adjustmentTypeHandler) deactivateType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	typeID := c.Param("typeID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.typeService.DeactivateType(c.Request.Context(), typeID, requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Adjustment type not found"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to deactivate adjustment type", slog.String("error", err.Error()), slog.String("type_id", typeID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate adjustment type"})
		return
	}

	logger.Info("Adjustment type deactivated", slog.String("type_id", typeID))
	c.Status(http.StatusNoContent)
}

// registerAdjustmentTypeRoutes registers adjustment type specific routes
func registerAdjustmentTypeRoutes(group *gin.RouterGroup, typeService portssvc.AdjustmentTypeSvcFacade) {
	handler := newAdjustmentTypeHandler(typeService)

	types := group.Group("/adjustment-types")
	{
		types.POST("", handler.createType)
		types.GET("", handler.listTypes)
		types.GET("/:typeID", handler.getType)
		types.PUT("/:typeID", handler.updateType)
		types.DELETE("/:typeID", handler.deactivateType)
	}
}
