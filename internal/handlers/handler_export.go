package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/finreg/adjustments_app/internal/apperrors"
	portssvc "github.com/finreg/adjustments_app/internal/core/ports/services"
	"github.com/finreg/adjustments_app/internal/dto"
	"github.com/finreg/adjustments_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exportHandler handles HTTP requests for adjustment exports.
type exportHandler struct {
	exportService portssvc.ExportService
}

// newExportHandler creates a new exportHandler.
func newExportHandler(exportService portssvc.ExportService) *exportHandler {
	return &exportHandler{
		exportService: exportService,
	}
}

// exportAdjustments godoc
// @Summary Export adjustments
// @Description Streams the adjustments matching the listing filter as a CSV or XLSX file
// @Tags exports
// @Produce  octet-stream
// @Param   format query string false "Export format: csv or xlsx (default csv)"
// @Param   status query []string false "Status filter, repeatable"
// @Param   dateFrom query string false "Range start (YYYY-MM-DD)"
// @Param   dateTo query string false "Range end (YYYY-MM-DD)"
// @Success 200 {file} binary "The exported file"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Router /adjustments/export [get]
func (h *exportHandler) exportAdjustments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ExportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for exportAdjustments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.exportService.ExportAdjustments(c.Request.Context(), requestingUserID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to export adjustments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export adjustments"})
		return
	}

	logger.Info("Adjustments exported",
		slog.String("file_name", result.FileName),
		slog.Int("bytes", len(result.Data)))

	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Header("Content-Length", strconv.Itoa(len(result.Data)))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// registerExportRoutes registers export specific routes
func registerExportRoutes(group *gin.RouterGroup, exportService portssvc.ExportService) {
	handler := newExportHandler(exportService)

	group.GET("/adjustments/export", handler.exportAdjustments)
}
