package repositories

import (
	"context"
	"time"

	"github.com/finreg/adjustments_app/internal/core/domain"
)

// AdjustmentTypeReader defines read operations for adjustment type reference data
type AdjustmentTypeReader interface {
	// FindTypeByID retrieves a specific adjustment type by its unique identifier.
	FindTypeByID(ctx context.Context, typeID string) (*domain.AdjustmentType, error)

	// FindTypeByName retrieves an adjustment type by its unique name.
	FindTypeByName(ctx context.Context, name domain.AdjustmentTypeName) (*domain.AdjustmentType, error)

	// ListTypes retrieves adjustment types, optionally only active ones.
	ListTypes(ctx context.Context, activeOnly bool) ([]domain.AdjustmentType, error)
}

// AdjustmentTypeWriter defines write operations for adjustment type reference data
type AdjustmentTypeWriter interface {
	// SaveType persists a new adjustment type.
	SaveType(ctx context.Context, adjustmentType domain.AdjustmentType) error

	// UpdateType updates an existing adjustment type's details.
	UpdateType(ctx context.Context, adjustmentType domain.AdjustmentType) error

	// DeactivateType marks an adjustment type as inactive.
	DeactivateType(ctx context.Context, typeID string, userID string, now time.Time) error
}

// AdjustmentTypeRepositoryFacade combines all adjustment-type repository interfaces.
type AdjustmentTypeRepositoryFacade interface {
	AdjustmentTypeReader
	AdjustmentTypeWriter
}
