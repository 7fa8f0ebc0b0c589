package dto

import (
	"github.com/finreg/adjustments_app/internal/core/domain"
)

// CreateAdjustmentTypeRequest defines the data needed to register an adjustment type.
type CreateAdjustmentTypeRequest struct {
	Name        domain.AdjustmentTypeName `json:"name" binding:"required,oneof=DEBIT CREDIT TRANSFER REVERSAL CORRECTION"`
	Description string                    `json:"description"`
}

// UpdateAdjustmentTypeRequest defines the fields of a type that may change.
type UpdateAdjustmentTypeRequest struct {
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// AdjustmentTypeResponse defines the data returned for an adjustment type.
type AdjustmentTypeResponse struct {
	TypeID      string                    `json:"typeID"`
	Name        domain.AdjustmentTypeName `json:"name"`
	Description string                    `json:"description"`
	IsActive    bool                      `json:"isActive"`
}

// ToAdjustmentTypeResponse converts a domain.AdjustmentType to its DTO.
func ToAdjustmentTypeResponse(t *domain.AdjustmentType) AdjustmentTypeResponse {
	return AdjustmentTypeResponse{
		TypeID:      t.TypeID,
		Name:        t.Name,
		Description: t.Description,
		IsActive:    t.IsActive,
	}
}

// ToAdjustmentTypeResponses converts a slice of types to DTOs.
func ToAdjustmentTypeResponses(types []domain.AdjustmentType) []AdjustmentTypeResponse {
	responses := make([]AdjustmentTypeResponse, len(types))
	for i, t := range types {
		responses[i] = ToAdjustmentTypeResponse(&t)
	}
	return responses
}
