package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentStatus is the lifecycle state of an adjustment.
type AdjustmentStatus string

const (
	StatusDraft     AdjustmentStatus = "DRAFT"
	StatusPending   AdjustmentStatus = "PENDING"
	StatusApproved  AdjustmentStatus = "APPROVED"
	StatusRejected  AdjustmentStatus = "REJECTED"
	StatusProcessed AdjustmentStatus = "PROCESSED"
	StatusAnnulled  AdjustmentStatus = "ANNULLED"
)

// AllStatuses lists every lifecycle state, in lifecycle order.
var AllStatuses = []AdjustmentStatus{
	StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusProcessed, StatusAnnulled,
}

// allowedTransitions is the complete transition table of the lifecycle.
// A state missing a target here cannot reach it, full stop.
var allowedTransitions = map[AdjustmentStatus][]AdjustmentStatus{
	StatusDraft:     {StatusPending},
	StatusPending:   {StatusApproved, StatusRejected},
	StatusApproved:  {StatusProcessed, StatusAnnulled},
	StatusRejected:  {StatusPending},
	StatusProcessed: {StatusAnnulled},
	StatusAnnulled:  {},
}

// CanTransition reports whether the lifecycle permits moving from one status to another.
func CanTransition(from, to AdjustmentStatus) bool {
	for _, target := range allowedTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// AllowedTargets returns the set of statuses reachable from the given status.
func AllowedTargets(from AdjustmentStatus) []AdjustmentStatus {
	targets := allowedTransitions[from]
	out := make([]AdjustmentStatus, len(targets))
	copy(out, targets)
	return out
}

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s AdjustmentStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// InvalidTransitionError reports a requested state change outside the transition table.
type InvalidTransitionError struct {
	From AdjustmentStatus
	To   AdjustmentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// ErrNotEditable indicates an edit or attachment attempt outside an editable state.
var ErrNotEditable = errors.New("adjustment is not editable in its current state")

// Capability is a named permission checked against an acting identity.
type Capability string

const (
	CapabilityApprove Capability = "APPROVE_ADJUSTMENTS"
	CapabilityProcess Capability = "PROCESS_ADJUSTMENTS"
)

// requiredCapabilities maps each transition target to the capability it demands.
// Entering PENDING or ANNULLED needs no capability beyond generic write access.
var requiredCapabilities = map[AdjustmentStatus]Capability{
	StatusApproved:  CapabilityApprove,
	StatusRejected:  CapabilityApprove,
	StatusProcessed: CapabilityProcess,
}

// RequiredCapability returns the capability needed to enter the target status,
// and whether one is required at all.
func RequiredCapability(target AdjustmentStatus) (Capability, bool) {
	cap, ok := requiredCapabilities[target]
	return cap, ok
}

// AdjustmentPriority ranks how urgently an adjustment should be handled.
type AdjustmentPriority string

const (
	PriorityLow    AdjustmentPriority = "LOW"
	PriorityMedium AdjustmentPriority = "MEDIUM"
	PriorityHigh   AdjustmentPriority = "HIGH"
	PriorityUrgent AdjustmentPriority = "URGENT"
)

// ValidPriority reports whether p is a known priority level.
func ValidPriority(p AdjustmentPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Deficit sign convention: adjustment amounts are negative, down to this floor.
var (
	AmountCeiling = decimal.RequireFromString("-0.01")
	AmountFloor   = decimal.RequireFromString("-999999999999.99")
)

// Adjustment is a monetary correction record moving through the approval lifecycle.
type Adjustment struct {
	AdjustmentID   string `json:"adjustmentID"`   // Primary Key (UUID)
	SequenceNumber string `json:"sequenceNumber"` // Assigned once at first persistence, immutable

	AdjustmentDate time.Time `json:"adjustmentDate"`
	ValueDate      time.Time `json:"valueDate"`

	TypeID          string `json:"typeID"`          // FK -> adjustment_types.type_id
	DebitAccountID  string `json:"debitAccountID"`  // FK -> accounts.account_id
	CreditAccountID string `json:"creditAccountID"` // FK -> accounts.account_id

	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`

	Concept       string `json:"concept"`
	Description   string `json:"description"`
	Justification string `json:"justification"`
	Notes         string `json:"notes"`

	Status   AdjustmentStatus   `json:"status"`
	Priority AdjustmentPriority `json:"priority"`

	CreatedByUserID   string  `json:"createdByUserID"`
	ApprovedByUserID  *string `json:"approvedByUserID,omitempty"`
	ProcessedByUserID *string `json:"processedByUserID,omitempty"`

	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`

	SourceDocumentNumber string `json:"sourceDocumentNumber"`
	ExternalReference    string `json:"externalReference"`
	CostCenter           string `json:"costCenter"`

	AuditFields
}

// CanEdit reports whether the adjustment may be modified, deleted, or gain attachments.
func (a *Adjustment) CanEdit() bool {
	return a.Status == StatusDraft || a.Status == StatusRejected
}

// CanApprove reports whether the adjustment is awaiting an approval decision.
func (a *Adjustment) CanApprove() bool {
	return a.Status == StatusPending
}

// CanProcess reports whether the adjustment is ready to be processed.
func (a *Adjustment) CanProcess() bool {
	return a.Status == StatusApproved
}
