package services

import (
	"context"
	"time"

	"github.com/finreg/adjustments_app/internal/core/domain"
	"github.com/finreg/adjustments_app/internal/dto"
)

// ReportingService defines the read-only aggregation views over adjustments.
type ReportingService interface {
	// GetDashboard aggregates counts, amounts, and breakdowns over the date
	// range. A missing range defaults to the last 30 days.
	GetDashboard(ctx context.Context, from, to *time.Time) (*domain.DashboardSummary, error)

	// GetUserActivity aggregates per-user created/approved/processed counts
	// over the date range.
	GetUserActivity(ctx context.Context, from, to *time.Time) ([]domain.UserActivityRow, error)
}

// ExportService renders filtered adjustment listings into downloadable files.
type ExportService interface {
	// ExportAdjustments encodes the adjustments matching the filter in the
	// requested format.
	ExportAdjustments(ctx context.Context, requestingUserID string, params dto.ExportParams) (*dto.ExportResult, error)
}
