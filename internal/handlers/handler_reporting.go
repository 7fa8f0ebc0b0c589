package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/finreg/adjustments_app/internal/apperrors"
	portssvc "github.com/finreg/adjustments_app/internal/core/ports/services"
	"github.com/finreg/adjustments_app/internal/dto"
	"github.com/finreg/adjustments_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for dashboards and activity reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// getDashboard godoc
// @Summary Get the adjustments dashboard
// @Description Aggregates counts, amounts, and breakdowns over a date range; defaults to the last 30 days
// @Tags reporting
// @Produce  json
// @Param   dateFrom query string false "Range start (YYYY-MM-DD)"
// @Param   dateTo query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.DashboardResponse "Dashboard aggregates"
// @Failure 400 {object} map[string]string "Invalid date range"
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getDashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	summary, err := h.reportingService.GetDashboard(c.Request.Context(), params.DateFrom, params.DateTo)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(summary))
}

// getUserActivity godoc
// @Summary Get per-user activity
// @Description Aggregates created, approved, and processed counts per user over a date range
// @Tags reporting
// @Produce  json
// @Param   dateFrom query string false "Range start (YYYY-MM-DD)"
// @Param   dateTo query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.UserActivityResponse "Activity rows"
// @Failure 400 {object} map[string]string "Invalid date range"
// @Router /reports/user-activity [get]
func (h *reportingHandler) getUserActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.UserActivityParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getUserActivity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	rows, err := h.reportingService.GetUserActivity(c.Request.Context(), params.DateFrom, params.DateTo)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build user activity report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build user activity report"})
		return
	}

	fromDate, toDate := resolveReportRange(params.DateFrom, params.DateTo)
	c.JSON(http.StatusOK, dto.UserActivityResponse{
		FromDate: fromDate,
		ToDate:   toDate,
		Rows:     rows,
	})
}

// resolveReportRange mirrors the service default of a trailing 30 day window
// so the response echoes the effective range.
func resolveReportRange(from, to *time.Time) (time.Time, time.Time) {
	end := time.Now().UTC()
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -30)
	if from != nil {
		start = *from
	}
	return start, end
}

// registerReportingRoutes registers reporting specific routes
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingService) {
	handler := newReportingHandler(reportingService)

	reports := group.Group("/reports")
	{
		reports.GET("/dashboard", handler.getDashboard)
		reports.GET("/user-activity", handler.getUserActivity)
	}
}
