package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/finreg/adjustments_app/internal/apperrors"
	"github.com/finreg/adjustments_app/internal/core/domain"
	portsrepo "github.com/finreg/adjustments_app/internal/core/ports/repositories"
	"github.com/finreg/adjustments_app/internal/models"
	"github.com/finreg/adjustments_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const adjustmentTypeColumns = `
	type_id, name, description, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAdjustmentTypeRepository struct {
	BaseRepository
}

// newPgxAdjustmentTypeRepository creates a new repository for adjustment type
// reference data.
func newPgxAdjustmentTypeRepository(pool *pgxpool.Pool) portsrepo.AdjustmentTypeRepositoryFacade {
	return &PgxAdjustmentTypeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAdjustmentTypeRepository implements portsrepo.AdjustmentTypeRepositoryFacade
var _ portsrepo.AdjustmentTypeRepositoryFacade = (*PgxAdjustmentTypeRepository)(nil)

func scanAdjustmentType(row pgx.Row) (models.AdjustmentType, error) {
	var m models.AdjustmentType
	err := row.Scan(
		&m.TypeID,
		&m.Name,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveType persists a new adjustment type.
func (r *PgxAdjustmentTypeRepository) SaveType(ctx context.Context, adjustmentType domain.AdjustmentType) error {
	m := mapping.ToModelAdjustmentType(adjustmentType)

	query := `
		INSERT INTO adjustment_types (type_id, name, description, is_active,
		                              created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TypeID,
		m.Name,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation on name
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert adjustment type "+m.TypeID, err)
	}

	return nil
}

// FindTypeByID retrieves an adjustment type by its ID.
func (r *PgxAdjustmentTypeRepository) FindTypeByID(ctx context.Context, typeID string) (*domain.AdjustmentType, error) {
	query := `SELECT ` + adjustmentTypeColumns + ` FROM adjustment_types WHERE type_id = $1;`

	m, err := scanAdjustmentType(r.Pool.QueryRow(ctx, query, typeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find adjustment type by ID "+typeID, err)
	}

	d := mapping.ToDomainAdjustmentType(m)
	return &d, nil
}

// FindTypeByName retrieves an adjustment type by its unique name.
func (r *PgxAdjustmentTypeRepository) FindTypeByName(ctx context.Context, name domain.AdjustmentTypeName) (*domain.AdjustmentType, error) {
	query := `SELECT ` + adjustmentTypeColumns + ` FROM adjustment_types WHERE name = $1;`

	m, err := scanAdjustmentType(r.Pool.QueryRow(ctx, query, string(name)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find adjustment type by name "+string(name), err)
	}

	d := mapping.ToDomainAdjustmentType(m)
	return &d, nil
}

// ListTypes retrieves adjustment types, optionally only active ones.
func (r *PgxAdjustmentTypeRepository) ListTypes(ctx context.Context, activeOnly bool) ([]domain.AdjustmentType, error) {
	query := `SELECT ` + adjustmentTypeColumns + ` FROM adjustment_types WHERE ($1 = FALSE OR is_active) ORDER BY name ASC;`

	rows, err := r.Pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query adjustment types", err)
	}
	defer rows.Close()

	types := []models.AdjustmentType{}
	for rows.Next() {
		m, scanErr := scanAdjustmentType(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan adjustment type row", scanErr)
		}
		types = append(types, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating adjustment type rows", err)
	}

	return mapping.ToDomainAdjustmentTypeSlice(types), nil
}

// UpdateType updates an existing adjustment type's details.
func (r *PgxAdjustmentTypeRepository) UpdateType(ctx context.Context, adjustmentType domain.AdjustmentType) error {
	m := mapping.ToModelAdjustmentType(adjustmentType)

	query := `
		UPDATE adjustment_types
		SET name = $2,
		    description = $3,
		    is_active = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE type_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TypeID,
		m.Name,
		m.Description,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to update adjustment type "+m.TypeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("adjustment type " + m.TypeID + " not found for update")
	}

	return nil
}

// DeactivateType marks an adjustment type as inactive.
func (r *PgxAdjustmentTypeRepository) DeactivateType(ctx context.Context, typeID string, userID string, now time.Time) error {
	query := `
		UPDATE adjustment_types
		SET is_active = FALSE,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE type_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, typeID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate adjustment type "+typeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("adjustment type " + typeID + " not found for deactivation")
	}

	return nil
}
