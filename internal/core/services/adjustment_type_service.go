package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finreg/adjustments_app/internal/apperrors"
	"github.com/finreg/adjustments_app/internal/core/domain"
	portsrepo "github.com/finreg/adjustments_app/internal/core/ports/repositories"
	portssvc "github.com/finreg/adjustments_app/internal/core/ports/services"
	"github.com/finreg/adjustments_app/internal/dto"
)

// adjustmentTypeService manages the adjustment type registry.
type adjustmentTypeService struct {
	BaseService
	typeRepo portsrepo.AdjustmentTypeRepositoryFacade
}

// NewAdjustmentTypeService creates a new AdjustmentTypeService.
func NewAdjustmentTypeService(typeRepo portsrepo.AdjustmentTypeRepositoryFacade) portssvc.AdjustmentTypeSvcFacade {
	return &adjustmentTypeService{typeRepo: typeRepo}
}

var _ portssvc.AdjustmentTypeSvcFacade = (*adjustmentTypeService)(nil)

// CreateType persists a new adjustment type.
func (s *adjustmentTypeService) CreateType(ctx context.Context, req dto.CreateAdjustmentTypeRequest, creatorUserID string) (*domain.AdjustmentType, error) {
	logger := s.GetLogger(ctx)

	if !domain.ValidTypeName(req.Name) {
		return nil, fmt.Errorf("%w: unknown adjustment type name %s", apperrors.ErrValidation, req.Name)
	}

	now := time.Now().UTC()
	adjustmentType := domain.AdjustmentType{
		TypeID:      uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.typeRepo.SaveType(ctx, adjustmentType); err != nil {
		logger.Error("Failed to save adjustment type", slog.String("error", err.Error()), slog.String("name", string(req.Name)))
		return nil, fmt.Errorf("failed to save adjustment type: %w", err)
	}

	logger.Info("Adjustment type created", slog.String("type_id", adjustmentType.TypeID), slog.String("name", string(adjustmentType.Name)))
	return &adjustmentType, nil
}

// GetTypeByID retrieves a specific adjustment type by its ID.
func (s *adjustmentTypeService) GetTypeByID(ctx context.Context, typeID string) (*domain.AdjustmentType, error) {
	adjustmentType, err := s.typeRepo.FindTypeByID(ctx, typeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find adjustment type %s: %w", typeID, err)
	}
	return adjustmentType, nil
}

// ListTypes retrieves adjustment types, optionally only active ones.
func (s *adjustmentTypeService) ListTypes(ctx context.Context, activeOnly bool) ([]domain.AdjustmentType, error) {
	types, err := s.typeRepo.ListTypes(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustment types: %w", err)
	}
	return types, nil
}

// UpdateType updates an existing adjustment type's details.
func (s *adjustmentTypeService) UpdateType(ctx context.Context, typeID string, req dto.UpdateAdjustmentTypeRequest, requestingUserID string) (*domain.AdjustmentType, error) {
	logger := s.GetLogger(ctx)

	adjustmentType, err := s.typeRepo.FindTypeByID(ctx, typeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find adjustment type %s: %w", typeID, err)
	}

	updated := false
	if req.Description != nil {
		adjustmentType.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil {
		adjustmentType.IsActive = *req.IsActive
		updated = true
	}

	if !updated {
		return adjustmentType, nil
	}

	adjustmentType.LastUpdatedAt = time.Now().UTC()
	adjustmentType.LastUpdatedBy = requestingUserID

	if err := s.typeRepo.UpdateType(ctx, *adjustmentType); err != nil {
		logger.Error("Failed to update adjustment type", slog.String("error", err.Error()), slog.String("type_id", typeID))
		return nil, fmt.Errorf("failed to update adjustment type: %w", err)
	}

	logger.Info("Adjustment type updated", slog.String("type_id", typeID))
	return adjustmentType, nil
}

// DeactivateType retires an adjustment type from use by new adjustments.
func (s *adjustmentTypeService) DeactivateType(ctx context.Context, typeID string, requestingUserID string) error {
	logger := s.GetLogger(ctx)

	if err := s.typeRepo.DeactivateType(ctx, typeID, requestingUserID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate adjustment type", slog.String("error", err.Error()), slog.String("type_id", typeID))
		return fmt.Errorf("failed to deactivate adjustment type %s: %w", typeID, err)
	}

	logger.Info("Adjustment type deactivated", slog.String("type_id", typeID))
	return nil
}
