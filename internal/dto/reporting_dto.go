package dto

import (
	"time"

	"github.com/finreg/adjustments_app/internal/core/domain"
)

// DashboardParams defines the date range for dashboard aggregation.
// Both bounds are inclusive; an empty range defaults to the last 30 days.
type DashboardParams struct {
	DateFrom *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"dateTo" time_format:"2006-01-02"`
}

// UserActivityParams defines the date range for the user activity report.
type UserActivityParams struct {
	DateFrom *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"dateTo" time_format:"2006-01-02"`
}

// DashboardResponse is the aggregated dashboard payload.
type DashboardResponse struct {
	FromDate time.Time `json:"fromDate"`
	ToDate   time.Time `json:"toDate"`

	TotalAdjustments  int64    `json:"totalAdjustments"`
	TotalAmount       string   `json:"totalAmount"`
	PendingApproval   int64    `json:"pendingApproval"`
	AvgProcessingDays *float64 `json:"avgProcessingDays,omitempty"`

	ByStatus   []domain.StatusBreakdownRow   `json:"byStatus"`
	ByType     []domain.TypeBreakdownRow     `json:"byType"`
	ByPriority []domain.PriorityBreakdownRow `json:"byPriority"`

	Recent []domain.RecentAdjustmentRow `json:"recent"`
}

// UserActivityResponse wraps the per-user activity rows for a date range.
type UserActivityResponse struct {
	FromDate time.Time                `json:"fromDate"`
	ToDate   time.Time                `json:"toDate"`
	Rows     []domain.UserActivityRow `json:"rows"`
}

// ToDashboardResponse converts a domain.DashboardSummary to its DTO.
func ToDashboardResponse(s *domain.DashboardSummary) DashboardResponse {
	return DashboardResponse{
		FromDate:          s.FromDate,
		ToDate:            s.ToDate,
		TotalAdjustments:  s.TotalAdjustments,
		TotalAmount:       s.TotalAmount.String(),
		PendingApproval:   s.PendingApproval,
		AvgProcessingDays: s.AvgProcessingDays,
		ByStatus:          s.ByStatus,
		ByType:            s.ByType,
		ByPriority:        s.ByPriority,
		Recent:            s.Recent,
	}
}
