package repositories

import (
	"context"
	"time"

	"github.com/finreg/adjustments_app/internal/core/domain"
)

// ReportingRepository defines read-only aggregation queries over persisted
// adjustment data. No method here ever writes.
type ReportingRepository interface {
	// GetStatusBreakdown aggregates count and amount per lifecycle status
	// within the date range.
	GetStatusBreakdown(ctx context.Context, from, to time.Time) ([]domain.StatusBreakdownRow, error)

	// GetTypeBreakdown aggregates count and amount per adjustment type
	// within the date range.
	GetTypeBreakdown(ctx context.Context, from, to time.Time) ([]domain.TypeBreakdownRow, error)

	// GetPriorityBreakdown aggregates count per priority within the date range.
	GetPriorityBreakdown(ctx context.Context, from, to time.Time) ([]domain.PriorityBreakdownRow, error)

	// CountPendingApproval counts adjustments currently in PENDING, regardless of range.
	CountPendingApproval(ctx context.Context) (int64, error)

	// GetAverageProcessingDays returns the mean days between adjustment date and
	// processing timestamp over processed adjustments, or nil when none exist.
	GetAverageProcessingDays(ctx context.Context) (*float64, error)

	// GetRecentAdjustments returns summary rows for the most recent adjustments
	// in the date range.
	GetRecentAdjustments(ctx context.Context, from, to time.Time, limit int) ([]domain.RecentAdjustmentRow, error)

	// GetUserActivity aggregates per-user created/approved/processed counts
	// within the date range.
	GetUserActivity(ctx context.Context, from, to time.Time) ([]domain.UserActivityRow, error)
}
