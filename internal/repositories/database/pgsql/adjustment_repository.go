package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/finreg/adjustments_app/internal/apperrors"
	"github.com/finreg/adjustments_app/internal/core/domain"
	portsrepo "github.com/finreg/adjustments_app/internal/core/ports/repositories"
	"github.com/finreg/adjustments_app/internal/models"
	"github.com/finreg/adjustments_app/internal/utils/mapping"
	"github.com/finreg/adjustments_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const adjustmentColumns = `
	adjustment_id, sequence_number, adjustment_date, value_date,
	type_id, debit_account_id, credit_account_id, amount, currency_code,
	concept, description, justification, notes, status, priority,
	created_by_user_id, approved_by_user_id, processed_by_user_id,
	approved_at, processed_at, expiry_date,
	source_document_number, external_reference, cost_center,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAdjustmentRepository struct {
	BaseRepository
}

// newPgxAdjustmentRepository creates a new repository for adjustment and history data.
func newPgxAdjustmentRepository(pool *pgxpool.Pool) portsrepo.AdjustmentRepositoryWithTx {
	return &PgxAdjustmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAdjustmentRepository implements portsrepo.AdjustmentRepositoryWithTx
var _ portsrepo.AdjustmentRepositoryWithTx = (*PgxAdjustmentRepository)(nil)

// scanAdjustment scans one adjustment row in adjustmentColumns order.
func scanAdjustment(row pgx.Row) (models.Adjustment, error) {
	var m models.Adjustment
	err := row.Scan(
		&m.AdjustmentID,
		&m.SequenceNumber,
		&m.AdjustmentDate,
		&m.ValueDate,
		&m.TypeID,
		&m.DebitAccountID,
		&m.CreditAccountID,
		&m.Amount,
		&m.CurrencyCode,
		&m.Concept,
		&m.Description,
		&m.Justification,
		&m.Notes,
		&m.Status,
		&m.Priority,
		&m.CreatedByUserID,
		&m.ApprovedByUserID,
		&m.ProcessedByUserID,
		&m.ApprovedAt,
		&m.ProcessedAt,
		&m.ExpiryDate,
		&m.SourceDocumentNumber,
		&m.ExternalReference,
		&m.CostCenter,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAdjustment inserts a new adjustment. The sequence number is produced by
// the database sequence inside the same statement, so concurrent creates can
// never collide or leave gaps from a read-then-write race.
func (r *PgxAdjustmentRepository) SaveAdjustment(ctx context.Context, adjustment domain.Adjustment) (*domain.Adjustment, error) {
	m := mapping.ToModelAdjustment(adjustment)

	query := `
		INSERT INTO adjustments (
			adjustment_id, sequence_number, adjustment_date, value_date,
			type_id, debit_account_id, credit_account_id, amount, currency_code,
			concept, description, justification, notes, status, priority,
			created_by_user_id, approved_by_user_id, processed_by_user_id,
			approved_at, processed_at, expiry_date,
			source_document_number, external_reference, cost_center,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES (
			$1, (SELECT 'AJ' || lpad(n, greatest(length(n), 8), '0')
			     FROM (SELECT nextval('adjustment_sequence')::text AS n) seq), $2, $3,
			$4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14,
			$15, $16, $17,
			$18, $19, $20,
			$21, $22, $23,
			$24, $25, $26, $27
		)
		RETURNING sequence_number;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.AdjustmentID,
		m.AdjustmentDate,
		m.ValueDate,
		m.TypeID,
		m.DebitAccountID,
		m.CreditAccountID,
		m.Amount,
		m.CurrencyCode,
		m.Concept,
		m.Description,
		m.Justification,
		m.Notes,
		m.Status,
		m.Priority,
		m.CreatedByUserID,
		m.ApprovedByUserID,
		m.ProcessedByUserID,
		m.ApprovedAt,
		m.ProcessedAt,
		m.ExpiryDate,
		m.SourceDocumentNumber,
		m.ExternalReference,
		m.CostCenter,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&adjustment.SequenceNumber)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return nil, fmt.Errorf("%w: adjustment %s", apperrors.ErrDuplicate, m.AdjustmentID)
			}
			if pgErr.Code == "23503" { // Foreign key violation
				return nil, fmt.Errorf("%w: referenced row missing for adjustment %s", apperrors.ErrValidation, m.AdjustmentID)
			}
		}
		return nil, apperrors.NewAppError(500, "failed to insert adjustment "+m.AdjustmentID, err)
	}

	return &adjustment, nil
}

// FindAdjustmentByID retrieves an adjustment by its ID.
func (r *PgxAdjustmentRepository) FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM adjustments WHERE adjustment_id = $1;`

	m, err := scanAdjustment(r.Pool.QueryRow(ctx, query, adjustmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find adjustment by ID "+adjustmentID, err)
	}

	d := mapping.ToDomainAdjustment(m)
	return &d, nil
}

// FindAdjustmentsByIDs retrieves multiple adjustments by their IDs.
func (r *PgxAdjustmentRepository) FindAdjustmentsByIDs(ctx context.Context, adjustmentIDs []string) (map[string]domain.Adjustment, error) {
	if len(adjustmentIDs) == 0 {
		return map[string]domain.Adjustment{}, nil
	}

	query := `SELECT ` + adjustmentColumns + ` FROM adjustments WHERE adjustment_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, adjustmentIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query adjustments by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Adjustment, len(adjustmentIDs))
	for rows.Next() {
		m, err := scanAdjustment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan adjustment row", err)
		}
		result[m.AdjustmentID] = mapping.ToDomainAdjustment(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating adjustment rows", err)
	}

	return result, nil
}

// buildListFilter renders the filter into WHERE clauses and args, starting at
// placeholder $1.
func buildListFilter(filter portsrepo.ListAdjustmentsFilter) ([]string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	next := func() string { return "$" + strconv.Itoa(len(args)) }

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		clauses = append(clauses, "status = ANY("+next()+")")
	}
	if filter.Priority != nil {
		args = append(args, string(*filter.Priority))
		clauses = append(clauses, "priority = "+next())
	}
	if len(filter.TypeIDs) > 0 {
		args = append(args, filter.TypeIDs)
		clauses = append(clauses, "type_id = ANY("+next()+")")
	}
	if filter.DebitAccountID != nil {
		args = append(args, *filter.DebitAccountID)
		clauses = append(clauses, "debit_account_id = "+next())
	}
	if filter.CreditAccountID != nil {
		args = append(args, *filter.CreditAccountID)
		clauses = append(clauses, "credit_account_id = "+next())
	}
	if filter.CurrencyCode != nil {
		args = append(args, *filter.CurrencyCode)
		clauses = append(clauses, "currency_code = "+next())
	}
	if filter.CreatedByUserID != nil {
		args = append(args, *filter.CreatedByUserID)
		clauses = append(clauses, "created_by_user_id = "+next())
	}
	if filter.InvolvedUserID != nil {
		args = append(args, *filter.InvolvedUserID)
		p := next()
		clauses = append(clauses, "(created_by_user_id = "+p+" OR approved_by_user_id = "+p+" OR processed_by_user_id = "+p+")")
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		clauses = append(clauses, "adjustment_date >= "+next())
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		clauses = append(clauses, "adjustment_date <= "+next())
	}
	if filter.AmountMin != nil {
		args = append(args, *filter.AmountMin)
		clauses = append(clauses, "amount >= "+next())
	}
	if filter.AmountMax != nil {
		args = append(args, *filter.AmountMax)
		clauses = append(clauses, "amount <= "+next())
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		p := next()
		clauses = append(clauses, "(sequence_number ILIKE "+p+
			" OR concept ILIKE "+p+
			" OR description ILIKE "+p+
			" OR justification ILIKE "+p+
			" OR source_document_number ILIKE "+p+
			" OR external_reference ILIKE "+p+")")
	}

	return clauses, args
}

// ListAdjustments retrieves a filtered, paginated list of adjustments using
// token-based pagination. It returns the adjustments, a token for the next
// page, and an error.
func (r *PgxAdjustmentRepository) ListAdjustments(ctx context.Context, filter portsrepo.ListAdjustmentsFilter, limit int, nextToken *string) ([]domain.Adjustment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether there is a next page.
	fetchLimit := limit + 1

	clauses, args := buildListFilter(filter)

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt, lastID)
		// adjustment_id breaks ties between rows sharing both timestamps.
		clauses = append(clauses, fmt.Sprintf("(adjustment_date, created_at, adjustment_id) < ($%d, $%d, $%d)", len(args)-2, len(args)-1, len(args)))
	}

	query := `SELECT ` + adjustmentColumns + ` FROM adjustments`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	args = append(args, fetchLimit)
	query += " ORDER BY adjustment_date DESC, created_at DESC, adjustment_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query adjustments", err)
	}
	defer rows.Close()

	modelAdjustments := make([]models.Adjustment, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanAdjustment(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan adjustment row", scanErr)
		}
		modelAdjustments = append(modelAdjustments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating adjustment rows", err)
	}

	var nextTokenVal *string
	results := modelAdjustments
	if len(modelAdjustments) > limit {
		last := modelAdjustments[limit-1]
		token := pagination.EncodeToken(last.AdjustmentDate, last.CreatedAt, last.AdjustmentID)
		nextTokenVal = &token
		results = modelAdjustments[:limit]
	}

	return mapping.ToDomainAdjustmentSlice(results), nextTokenVal, nil
}

// UpdateAdjustment updates the editable fields of an adjustment. Sequence
// number, status, and creator are never touched here; status changes go
// through SaveTransition.
func (r *PgxAdjustmentRepository) UpdateAdjustment(ctx context.Context, adjustment domain.Adjustment) error {
	m := mapping.ToModelAdjustment(adjustment)

	query := `
		UPDATE adjustments
		SET adjustment_date = $2,
		    value_date = $3,
		    type_id = $4,
		    debit_account_id = $5,
		    credit_account_id = $6,
		    amount = $7,
		    currency_code = $8,
		    concept = $9,
		    description = $10,
		    justification = $11,
		    notes = $12,
		    priority = $13,
		    expiry_date = $14,
		    source_document_number = $15,
		    external_reference = $16,
		    cost_center = $17,
		    last_updated_at = $18,
		    last_updated_by = $19
		WHERE adjustment_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AdjustmentID,
		m.AdjustmentDate,
		m.ValueDate,
		m.TypeID,
		m.DebitAccountID,
		m.CreditAccountID,
		m.Amount,
		m.CurrencyCode,
		m.Concept,
		m.Description,
		m.Justification,
		m.Notes,
		m.Priority,
		m.ExpiryDate,
		m.SourceDocumentNumber,
		m.ExternalReference,
		m.CostCenter,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update adjustment "+m.AdjustmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("adjustment " + m.AdjustmentID + " not found for update")
	}

	return nil
}

// SaveTransition applies a lifecycle transition atomically: the status update
// (plus approver/processor stamps) and the history row commit together or not
// at all.
func (r *PgxAdjustmentRepository) SaveTransition(ctx context.Context, adjustment domain.Adjustment, entry domain.HistoryEntry) error {
	m := mapping.ToModelAdjustment(adjustment)
	h := mapping.ToModelHistoryEntry(entry)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	statusQuery := `
		UPDATE adjustments
		SET status = $2,
		    approved_by_user_id = $3,
		    approved_at = $4,
		    processed_by_user_id = $5,
		    processed_at = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE adjustment_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, statusQuery,
		m.AdjustmentID,
		m.Status,
		m.ApprovedByUserID,
		m.ApprovedAt,
		m.ProcessedByUserID,
		m.ProcessedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for adjustment "+m.AdjustmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("adjustment " + m.AdjustmentID + " not found for transition")
	}

	historyQuery := `
		INSERT INTO adjustment_history (history_id, adjustment_id, from_status, to_status, user_id, comment, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := tx.Exec(ctx, historyQuery,
		h.HistoryID,
		h.AdjustmentID,
		h.FromStatus,
		h.ToStatus,
		h.UserID,
		h.Comment,
		h.ChangedAt,
	); err != nil {
		return apperrors.NewAppError(500, "failed to insert history entry for adjustment "+m.AdjustmentID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteAdjustments removes adjustments; history, attachments, and comments
// go with them via ON DELETE CASCADE. All-or-nothing.
func (r *PgxAdjustmentRepository) DeleteAdjustments(ctx context.Context, adjustmentIDs []string) error {
	if len(adjustmentIDs) == 0 {
		return nil
	}

	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM adjustments WHERE adjustment_id = ANY($1);`, adjustmentIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete adjustments", err)
	}
	if cmdTag.RowsAffected() != int64(len(adjustmentIDs)) {
		return apperrors.NewNotFoundError("one or more adjustments not found for deletion")
	}

	return nil
}

// FindHistoryByAdjustmentID returns all transitions for an adjustment, most
// recent first.
func (r *PgxAdjustmentRepository) FindHistoryByAdjustmentID(ctx context.Context, adjustmentID string) ([]domain.HistoryEntry, error) {
	query := `
		SELECT history_id, adjustment_id, from_status, to_status, user_id, comment, changed_at
		FROM adjustment_history
		WHERE adjustment_id = $1
		ORDER BY changed_at DESC, history_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, adjustmentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query history for adjustment "+adjustmentID, err)
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var h models.HistoryEntry
		if err := rows.Scan(
			&h.HistoryID,
			&h.AdjustmentID,
			&h.FromStatus,
			&h.ToStatus,
			&h.UserID,
			&h.Comment,
			&h.ChangedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan history row for adjustment "+adjustmentID, err)
		}
		entries = append(entries, h)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating history rows for adjustment "+adjustmentID, err)
	}

	return mapping.ToDomainHistoryEntrySlice(entries), nil
}
