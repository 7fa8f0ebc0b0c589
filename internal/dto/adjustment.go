package dto

import (
	"time"

	"github.com/finreg/adjustments_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAdjustmentRequest defines the data needed to register a new adjustment.
// The sequence number, status, and creator are never accepted from the caller.
type CreateAdjustmentRequest struct {
	AdjustmentDate time.Time `json:"adjustmentDate" binding:"required"`
	ValueDate      time.Time `json:"valueDate" binding:"required"`

	TypeID          string `json:"typeID" binding:"required"`
	DebitAccountID  string `json:"debitAccountID" binding:"required"`
	CreditAccountID string `json:"creditAccountID" binding:"required"`

	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode"` // Defaults to the configured currency when empty

	Concept       string `json:"concept" binding:"required,max=200"`
	Description   string `json:"description" binding:"required"`
	Justification string `json:"justification" binding:"required"`
	Notes         string `json:"notes"`

	Priority domain.AdjustmentPriority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`

	ExpiryDate           *time.Time `json:"expiryDate"`
	SourceDocumentNumber string     `json:"sourceDocumentNumber" binding:"max=50"`
	ExternalReference    string     `json:"externalReference" binding:"max=100"`
	CostCenter           string     `json:"costCenter" binding:"max=50"`
}

// UpdateAdjustmentRequest defines the fields that may change while an
// adjustment is editable. Pointers distinguish omitted fields from zero values.
type UpdateAdjustmentRequest struct {
	AdjustmentDate *time.Time `json:"adjustmentDate"`
	ValueDate      *time.Time `json:"valueDate"`

	TypeID          *string `json:"typeID"`
	DebitAccountID  *string `json:"debitAccountID"`
	CreditAccountID *string `json:"creditAccountID"`

	Amount       *decimal.Decimal `json:"amount"`
	CurrencyCode *string          `json:"currencyCode"`

	Concept       *string `json:"concept"`
	Description   *string `json:"description"`
	Justification *string `json:"justification"`
	Notes         *string `json:"notes"`

	Priority *domain.AdjustmentPriority `json:"priority"`

	ExpiryDate           *time.Time `json:"expiryDate"`
	SourceDocumentNumber *string    `json:"sourceDocumentNumber"`
	ExternalReference    *string    `json:"externalReference"`
	CostCenter           *string    `json:"costCenter"`
}

// TransitionRequest asks to move an adjustment into a new lifecycle state.
type TransitionRequest struct {
	TargetStatus domain.AdjustmentStatus `json:"targetStatus" binding:"required,oneof=DRAFT PENDING APPROVED REJECTED PROCESSED ANNULLED"`
	Comment      string                  `json:"comment"`
}

// AdjustmentResponse defines the data returned for an adjustment.
type AdjustmentResponse struct {
	AdjustmentID   string `json:"adjustmentID"`
	SequenceNumber string `json:"sequenceNumber"`

	AdjustmentDate time.Time `json:"adjustmentDate"`
	ValueDate      time.Time `json:"valueDate"`

	TypeID          string `json:"typeID"`
	DebitAccountID  string `json:"debitAccountID"`
	CreditAccountID string `json:"creditAccountID"`

	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`

	Concept       string `json:"concept"`
	Description   string `json:"description"`
	Justification string `json:"justification"`
	Notes         string `json:"notes"`

	Status   domain.AdjustmentStatus   `json:"status"`
	Priority domain.AdjustmentPriority `json:"priority"`

	CanEdit    bool `json:"canEdit"`
	CanApprove bool `json:"canApprove"`
	CanProcess bool `json:"canProcess"`

	CreatedByUserID   string  `json:"createdByUserID"`
	ApprovedByUserID  *string `json:"approvedByUserID,omitempty"`
	ProcessedByUserID *string `json:"processedByUserID,omitempty"`

	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`

	SourceDocumentNumber string `json:"sourceDocumentNumber"`
	ExternalReference    string `json:"externalReference"`
	CostCenter           string `json:"costCenter"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// HistoryEntryResponse defines the data returned for one lifecycle transition.
type HistoryEntryResponse struct {
	HistoryID    string                  `json:"historyID"`
	AdjustmentID string                  `json:"adjustmentID"`
	FromStatus   domain.AdjustmentStatus `json:"fromStatus"`
	ToStatus     domain.AdjustmentStatus `json:"toStatus"`
	UserID       string                  `json:"userID"`
	Comment      string                  `json:"comment"`
	ChangedAt    time.Time               `json:"changedAt"`
}

// ListAdjustmentsParams defines query parameters for listing adjustments.
type ListAdjustmentsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`

	Statuses        []domain.AdjustmentStatus  `form:"status"`
	Priority        *domain.AdjustmentPriority `form:"priority"`
	TypeIDs         []string                   `form:"typeID"`
	DebitAccountID  *string                    `form:"debitAccountID"`
	CreditAccountID *string                    `form:"creditAccountID"`
	CurrencyCode    *string                    `form:"currencyCode"`
	DateFrom        *time.Time                 `form:"dateFrom" time_format:"2006-01-02"`
	DateTo          *time.Time                 `form:"dateTo" time_format:"2006-01-02"`
	AmountMin       *decimal.Decimal           `form:"amountMin"`
	AmountMax       *decimal.Decimal           `form:"amountMax"`
	Search          *string                    `form:"search"`
	Mine            bool                       `form:"mine"`
}

// ListAdjustmentsResponse wraps a page of adjustments.
type ListAdjustmentsResponse struct {
	Adjustments []AdjustmentResponse `json:"adjustments"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// BulkDeleteRequest names the adjustments to delete in one operation.
type BulkDeleteRequest struct {
	AdjustmentIDs []string `json:"adjustmentIDs" binding:"required,min=1"`
}

// BulkDeleteResponse reports how many adjustments were deleted.
type BulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}

// ToAdjustmentResponse converts a domain.Adjustment to AdjustmentResponse DTO.
func ToAdjustmentResponse(a *domain.Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		AdjustmentID:         a.AdjustmentID,
		SequenceNumber:       a.SequenceNumber,
		AdjustmentDate:       a.AdjustmentDate,
		ValueDate:            a.ValueDate,
		TypeID:               a.TypeID,
		DebitAccountID:       a.DebitAccountID,
		CreditAccountID:      a.CreditAccountID,
		Amount:               a.Amount,
		CurrencyCode:         a.CurrencyCode,
		Concept:              a.Concept,
		Description:          a.Description,
		Justification:        a.Justification,
		Notes:                a.Notes,
		Status:               a.Status,
		Priority:             a.Priority,
		CanEdit:              a.CanEdit(),
		CanApprove:           a.CanApprove(),
		CanProcess:           a.CanProcess(),
		CreatedByUserID:      a.CreatedByUserID,
		ApprovedByUserID:     a.ApprovedByUserID,
		ProcessedByUserID:    a.ProcessedByUserID,
		ApprovedAt:           a.ApprovedAt,
		ProcessedAt:          a.ProcessedAt,
		ExpiryDate:           a.ExpiryDate,
		SourceDocumentNumber: a.SourceDocumentNumber,
		ExternalReference:    a.ExternalReference,
		CostCenter:           a.CostCenter,
		CreatedAt:            a.CreatedAt,
		LastUpdatedAt:        a.LastUpdatedAt,
	}
}

// ToListAdjustmentsResponse converts a page of domain adjustments to a DTO response.
func ToListAdjustmentsResponse(adjustments []domain.Adjustment, nextToken *string) ListAdjustmentsResponse {
	responses := make([]AdjustmentResponse, len(adjustments))
	for i, a := range adjustments {
		responses[i] = ToAdjustmentResponse(&a)
	}
	return ListAdjustmentsResponse{
		Adjustments: responses,
		NextToken:   nextToken,
	}
}

// ToHistoryEntryResponse converts a domain.HistoryEntry to its DTO.
func ToHistoryEntryResponse(h *domain.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		HistoryID:    h.HistoryID,
		AdjustmentID: h.AdjustmentID,
		FromStatus:   h.FromStatus,
		ToStatus:     h.ToStatus,
		UserID:       h.UserID,
		Comment:      h.Comment,
		ChangedAt:    h.ChangedAt,
	}
}

// ToHistoryEntryResponses converts a slice of history entries to DTOs.
func ToHistoryEntryResponses(entries []domain.HistoryEntry) []HistoryEntryResponse {
	responses := make([]HistoryEntryResponse, len(entries))
	for i, h := range entries {
		responses[i] = ToHistoryEntryResponse(&h)
	}
	return responses
}
