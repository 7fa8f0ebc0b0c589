package domain

import "time"

// HistoryEntry is one immutable audit record of a lifecycle transition.
// Entries are created exactly once per transition and never mutated or deleted.
type HistoryEntry struct {
	HistoryID    string           `json:"historyID"`    // Primary Key (UUID)
	AdjustmentID string           `json:"adjustmentID"` // FK -> adjustments.adjustment_id
	FromStatus   AdjustmentStatus `json:"fromStatus"`
	ToStatus     AdjustmentStatus `json:"toStatus"`
	UserID       string           `json:"userID"` // Acting identity
	Comment      string           `json:"comment"`
	ChangedAt    time.Time        `json:"changedAt"` // Set once at creation
}
