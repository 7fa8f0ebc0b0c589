package pgsql

import (
	"context"
	"time"

	"github.com/finreg/adjustments_app/internal/apperrors"
	"github.com/finreg/adjustments_app/internal/core/domain"
	portsrepo "github.com/finreg/adjustments_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a read-only repository for dashboard and
// activity aggregations.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetStatusBreakdown aggregates count and amount per lifecycle status.
func (r *PgxReportingRepository) GetStatusBreakdown(ctx context.Context, from, to time.Time) ([]domain.StatusBreakdownRow, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(amount), 0)
		FROM adjustments
		WHERE adjustment_date >= $1 AND adjustment_date <= $2
		GROUP BY status
		ORDER BY status;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query status breakdown", err)
	}
	defer rows.Close()

	result := []domain.StatusBreakdownRow{}
	for rows.Next() {
		var row domain.StatusBreakdownRow
		if err := rows.Scan(&row.Status, &row.Count, &row.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan status breakdown row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating status breakdown rows", err)
	}

	return result, nil
}

// GetTypeBreakdown aggregates count and amount per adjustment type.
func (r *PgxReportingRepository) GetTypeBreakdown(ctx context.Context, from, to time.Time) ([]domain.TypeBreakdownRow, error) {
	query := `
		SELECT t.name, COUNT(*), COALESCE(SUM(a.amount), 0)
		FROM adjustments a
		JOIN adjustment_types t ON t.type_id = a.type_id
		WHERE a.adjustment_date >= $1 AND a.adjustment_date <= $2
		GROUP BY t.name
		ORDER BY t.name;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query type breakdown", err)
	}
	defer rows.Close()

	result := []domain.TypeBreakdownRow{}
	for rows.Next() {
		var row domain.TypeBreakdownRow
		if err := rows.Scan(&row.TypeName, &row.Count, &row.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan type breakdown row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating type breakdown rows", err)
	}

	return result, nil
}

// GetPriorityBreakdown aggregates count per priority.
func (r *PgxReportingRepository) GetPriorityBreakdown(ctx context.Context, from, to time.Time) ([]domain.PriorityBreakdownRow, error) {
	query := `
		SELECT priority, COUNT(*)
		FROM adjustments
		WHERE adjustment_date >= $1 AND adjustment_date <= $2
		GROUP BY priority
		ORDER BY priority;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query priority breakdown", err)
	}
	defer rows.Close()

	result := []domain.PriorityBreakdownRow{}
	for rows.Next() {
		var row domain.PriorityBreakdownRow
		if err := rows.Scan(&row.Priority, &row.Count); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan priority breakdown row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating priority breakdown rows", err)
	}

	return result, nil
}

// CountPendingApproval counts adjustments currently awaiting approval.
func (r *PgxReportingRepository) CountPendingApproval(ctx context.Context) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM adjustments WHERE status = 'PENDING';`).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count pending adjustments", err)
	}
	return count, nil
}

// GetAverageProcessingDays returns the mean days between adjustment date and
// processing timestamp, or nil when nothing has been processed yet.
func (r *PgxReportingRepository) GetAverageProcessingDays(ctx context.Context) (*float64, error) {
	query := `
		SELECT AVG(EXTRACT(EPOCH FROM (processed_at - adjustment_date)) / 86400.0)
		FROM adjustments
		WHERE status = 'PROCESSED' AND processed_at IS NOT NULL;
	`
	var avg *float64
	if err := r.Pool.QueryRow(ctx, query).Scan(&avg); err != nil {
		return nil, apperrors.NewAppError(500, "failed to compute average processing days", err)
	}
	return avg, nil
}

// GetRecentAdjustments returns summary rows for the most recent adjustments
// in the date range.
func (r *PgxReportingRepository) GetRecentAdjustments(ctx context.Context, from, to time.Time, limit int) ([]domain.RecentAdjustmentRow, error) {
	query := `
		SELECT a.adjustment_id, a.sequence_number, a.concept, a.amount, a.status,
		       t.name, u.full_name, a.adjustment_date
		FROM adjustments a
		JOIN adjustment_types t ON t.type_id = a.type_id
		JOIN users u ON u.user_id = a.created_by_user_id
		WHERE a.adjustment_date >= $1 AND a.adjustment_date <= $2
		ORDER BY a.adjustment_date DESC, a.created_at DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query recent adjustments", err)
	}
	defer rows.Close()

	result := []domain.RecentAdjustmentRow{}
	for rows.Next() {
		var row domain.RecentAdjustmentRow
		if err := rows.Scan(
			&row.AdjustmentID,
			&row.SequenceNumber,
			&row.Concept,
			&row.Amount,
			&row.Status,
			&row.TypeName,
			&row.CreatedByName,
			&row.AdjustmentDate,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan recent adjustment row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating recent adjustment rows", err)
	}

	return result, nil
}

// GetUserActivity aggregates per-user created/approved/processed counts.
// Soft-deleted users are still reported; their past actions remain on record.
func (r *PgxReportingRepository) GetUserActivity(ctx context.Context, from, to time.Time) ([]domain.UserActivityRow, error) {
	query := `
		SELECT u.user_id, u.full_name,
		       COUNT(*) FILTER (WHERE a.created_by_user_id = u.user_id),
		       COUNT(*) FILTER (WHERE a.approved_by_user_id = u.user_id),
		       COUNT(*) FILTER (WHERE a.processed_by_user_id = u.user_id)
		FROM users u
		JOIN adjustments a ON (a.created_by_user_id = u.user_id
		                       OR a.approved_by_user_id = u.user_id
		                       OR a.processed_by_user_id = u.user_id)
		WHERE a.adjustment_date >= $1 AND a.adjustment_date <= $2
		GROUP BY u.user_id, u.full_name
		ORDER BY u.full_name;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query user activity", err)
	}
	defer rows.Close()

	result := []domain.UserActivityRow{}
	for rows.Next() {
		var row domain.UserActivityRow
		if err := rows.Scan(
			&row.UserID,
			&row.UserName,
			&row.CreatedCount,
			&row.ApprovedCount,
			&row.ProcessedCount,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user activity row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user activity rows", err)
	}

	return result, nil
}
