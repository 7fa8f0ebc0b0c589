package repositories

import (
	"context"
	"time"

	"github.com/finreg/adjustments_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListAdjustmentsFilter narrows an adjustment listing. Zero values mean "no filter".
type ListAdjustmentsFilter struct {
	Statuses        []domain.AdjustmentStatus
	Priority        *domain.AdjustmentPriority
	TypeIDs         []string
	DebitAccountID  *string
	CreditAccountID *string
	CurrencyCode    *string
	CreatedByUserID *string
	// InvolvedUserID matches creator, approver, or processor. Used to scope
	// listings for non-admin callers.
	InvolvedUserID *string
	DateFrom       *time.Time
	DateTo         *time.Time
	AmountMin      *decimal.Decimal
	AmountMax      *decimal.Decimal
	// Search matches sequence number, concept, description, justification,
	// source document number, and external reference.
	Search *string
}

// AdjustmentReader defines read operations for adjustment data
type AdjustmentReader interface {
	// FindAdjustmentByID retrieves a specific adjustment by its unique identifier.
	FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error)

	// FindAdjustmentsByIDs retrieves multiple adjustments by their IDs.
	FindAdjustmentsByIDs(ctx context.Context, adjustmentIDs []string) (map[string]domain.Adjustment, error)

	// ListAdjustments retrieves a filtered, paginated list of adjustments using
	// token-based pagination ordered by (adjustment_date DESC, created_at DESC).
	// It returns the adjustments, a token for the next page, and an error.
	ListAdjustments(ctx context.Context, filter ListAdjustmentsFilter, limit int, nextToken *string) ([]domain.Adjustment, *string, error)
}

// AdjustmentWriter defines write operations for adjustment data
type AdjustmentWriter interface {
	// SaveAdjustment persists a new adjustment. The sequence number is assigned
	// by the store from a monotonic sequence and written back into the returned
	// adjustment; callers must not supply one.
	SaveAdjustment(ctx context.Context, adjustment domain.Adjustment) (*domain.Adjustment, error)

	// UpdateAdjustment updates the editable fields of an adjustment.
	// Sequence number, status, and creator are never touched here.
	UpdateAdjustment(ctx context.Context, adjustment domain.Adjustment) error

	// SaveTransition atomically applies a lifecycle transition: it writes the
	// adjustment's new status (plus approver/processor stamps carried on the
	// adjustment) and appends the history entry in a single database
	// transaction. A concurrent reader sees both writes or neither.
	SaveTransition(ctx context.Context, adjustment domain.Adjustment, entry domain.HistoryEntry) error

	// DeleteAdjustments removes the given adjustments and, via cascade, their
	// history entries, attachments, and comments. All-or-nothing.
	DeleteAdjustments(ctx context.Context, adjustmentIDs []string) error
}

// HistoryReader defines read access to the append-only transition log.
type HistoryReader interface {
	// FindHistoryByAdjustmentID returns all transitions for an adjustment,
	// most recent first.
	FindHistoryByAdjustmentID(ctx context.Context, adjustmentID string) ([]domain.HistoryEntry, error)
}

// AdjustmentRepositoryFacade combines all adjustment-related repository interfaces.
type AdjustmentRepositoryFacade interface {
	AdjustmentReader
	AdjustmentWriter
	HistoryReader
}

// AdjustmentRepositoryWithTx extends AdjustmentRepositoryFacade with transaction capabilities
type AdjustmentRepositoryWithTx interface {
	AdjustmentRepositoryFacade
	TransactionManager
}
