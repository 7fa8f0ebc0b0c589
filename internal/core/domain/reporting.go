package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusBreakdownRow aggregates adjustments sharing one lifecycle status.
type StatusBreakdownRow struct {
	Status AdjustmentStatus `json:"status"`
	Count  int64            `json:"count"`
	Amount decimal.Decimal  `json:"amount"`
}

// TypeBreakdownRow aggregates adjustments sharing one adjustment type.
type TypeBreakdownRow struct {
	TypeName AdjustmentTypeName `json:"typeName"`
	Count    int64              `json:"count"`
	Amount   decimal.Decimal    `json:"amount"`
}

// PriorityBreakdownRow aggregates adjustments sharing one priority.
type PriorityBreakdownRow struct {
	Priority AdjustmentPriority `json:"priority"`
	Count    int64              `json:"count"`
}

// RecentAdjustmentRow is a summary line for the dashboard's recent list.
type RecentAdjustmentRow struct {
	AdjustmentID    string           `json:"adjustmentID"`
	SequenceNumber  string           `json:"sequenceNumber"`
	Concept         string           `json:"concept"`
	Amount          decimal.Decimal  `json:"amount"`
	Status          AdjustmentStatus `json:"status"`
	TypeName        string           `json:"typeName"`
	CreatedByName   string           `json:"createdByName"`
	AdjustmentDate  time.Time        `json:"adjustmentDate"`
}

// DashboardSummary is the aggregated dashboard view over a date range.
type DashboardSummary struct {
	FromDate time.Time `json:"fromDate"`
	ToDate   time.Time `json:"toDate"`

	TotalAdjustments int64           `json:"totalAdjustments"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	PendingApproval  int64           `json:"pendingApproval"`
	// Average days from adjustment date to processing, nil if nothing processed.
	AvgProcessingDays *float64 `json:"avgProcessingDays,omitempty"`

	ByStatus   []StatusBreakdownRow   `json:"byStatus"`
	ByType     []TypeBreakdownRow     `json:"byType"`
	ByPriority []PriorityBreakdownRow `json:"byPriority"`

	Recent []RecentAdjustmentRow `json:"recent"`
}

// UserActivityRow aggregates one user's lifecycle participation.
type UserActivityRow struct {
	UserID         string `json:"userID"`
	UserName       string `json:"userName"`
	CreatedCount   int64  `json:"createdCount"`
	ApprovedCount  int64  `json:"approvedCount"`
	ProcessedCount int64  `json:"processedCount"`
}
