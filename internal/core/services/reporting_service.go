package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finreg/adjustments_app/internal/apperrors"
	"github.com/finreg/adjustments_app/internal/core/domain"
	portsrepo "github.com/finreg/adjustments_app/internal/core/ports/repositories"
	portssvc "github.com/finreg/adjustments_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const defaultDashboardWindowDays = 30

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{reportingRepo: repo}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// resolveRange fills in the default window (last 30 days) and validates ordering.
func resolveRange(from, to *time.Time) (time.Time, time.Time, error) {
	resolvedTo := time.Now().UTC()
	if to != nil {
		resolvedTo = *to
	}
	resolvedFrom := resolvedTo.AddDate(0, 0, -defaultDashboardWindowDays)
	if from != nil {
		resolvedFrom = *from
	}
	if resolvedFrom.After(resolvedTo) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: date range start is after its end", apperrors.ErrValidation)
	}
	return resolvedFrom, resolvedTo, nil
}

// GetDashboard aggregates counts, amounts, and breakdowns over the date range.
func (s *reportingService) GetDashboard(ctx context.Context, from, to *time.Time) (*domain.DashboardSummary, error) {
	resolvedFrom, resolvedTo, err := resolveRange(from, to)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.reportingRepo.GetStatusBreakdown(ctx, resolvedFrom, resolvedTo)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve status breakdown")
		return nil, fmt.Errorf("failed to retrieve status breakdown: %w", err)
	}

	byType, err := s.reportingRepo.GetTypeBreakdown(ctx, resolvedFrom, resolvedTo)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve type breakdown")
		return nil, fmt.Errorf("failed to retrieve type breakdown: %w", err)
	}

	byPriority, err := s.reportingRepo.GetPriorityBreakdown(ctx, resolvedFrom, resolvedTo)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve priority breakdown")
		return nil, fmt.Errorf("failed to retrieve priority breakdown: %w", err)
	}

	pendingApproval, err := s.reportingRepo.CountPendingApproval(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count pending approvals")
		return nil, fmt.Errorf("failed to count pending approvals: %w", err)
	}

	avgProcessingDays, err := s.reportingRepo.GetAverageProcessingDays(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute average processing days")
		return nil, fmt.Errorf("failed to compute average processing days: %w", err)
	}

	recent, err := s.reportingRepo.GetRecentAdjustments(ctx, resolvedFrom, resolvedTo, 10)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve recent adjustments")
		return nil, fmt.Errorf("failed to retrieve recent adjustments: %w", err)
	}

	// Totals fall out of the status breakdown; no extra query needed.
	totalCount := int64(0)
	totalAmount := decimal.Zero
	for _, row := range byStatus {
		totalCount += row.Count
		totalAmount = totalAmount.Add(row.Amount)
	}

	summary := &domain.DashboardSummary{
		FromDate:          resolvedFrom,
		ToDate:            resolvedTo,
		TotalAdjustments:  totalCount,
		TotalAmount:       totalAmount,
		PendingApproval:   pendingApproval,
		AvgProcessingDays: avgProcessingDays,
		ByStatus:          byStatus,
		ByType:            byType,
		ByPriority:        byPriority,
		Recent:            recent,
	}

	s.LogInfo(ctx, "Dashboard summary generated",
		slog.String("from", resolvedFrom.Format(time.RFC3339)),
		slog.String("to", resolvedTo.Format(time.RFC3339)),
		slog.Int64("total", totalCount))
	return summary, nil
}

// GetUserActivity aggregates per-user created/approved/processed counts.
func (s *reportingService) GetUserActivity(ctx context.Context, from, to *time.Time) ([]domain.UserActivityRow, error) {
	resolvedFrom, resolvedTo, err := resolveRange(from, to)
	if err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.GetUserActivity(ctx, resolvedFrom, resolvedTo)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve user activity")
		return nil, fmt.Errorf("failed to retrieve user activity: %w", err)
	}

	s.LogInfo(ctx, "User activity report generated", slog.Int("row_count", len(rows)))
	return rows, nil
}
