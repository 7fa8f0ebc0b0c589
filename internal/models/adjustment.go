package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentStatus mirrors domain.AdjustmentStatus at the DB layer.
type AdjustmentStatus string

// AdjustmentPriority mirrors domain.AdjustmentPriority at the DB layer.
type AdjustmentPriority string

// Adjustment is the DB representation of a financial adjustment record.
type Adjustment struct {
	AdjustmentID   string `db:"adjustment_id"`
	SequenceNumber string `db:"sequence_number"` // Unique, assigned once

	AdjustmentDate time.Time `db:"adjustment_date"`
	ValueDate      time.Time `db:"value_date"`

	TypeID          string `db:"type_id"`
	DebitAccountID  string `db:"debit_account_id"`
	CreditAccountID string `db:"credit_account_id"`

	Amount       decimal.Decimal `db:"amount"`
	CurrencyCode string          `db:"currency_code"`

	Concept       string `db:"concept"`
	Description   string `db:"description"`
	Justification string `db:"justification"`
	Notes         string `db:"notes"`

	Status   AdjustmentStatus   `db:"status"`
	Priority AdjustmentPriority `db:"priority"`

	CreatedByUserID   string         `db:"created_by_user_id"`
	ApprovedByUserID  sql.NullString `db:"approved_by_user_id"`
	ProcessedByUserID sql.NullString `db:"processed_by_user_id"`

	ApprovedAt  sql.NullTime `db:"approved_at"`
	ProcessedAt sql.NullTime `db:"processed_at"`
	ExpiryDate  sql.NullTime `db:"expiry_date"`

	SourceDocumentNumber string `db:"source_document_number"`
	ExternalReference    string `db:"external_reference"`
	CostCenter           string `db:"cost_center"`

	AuditFields
}

// HistoryEntry is the DB representation of one lifecycle transition. Append-only.
type HistoryEntry struct {
	HistoryID    string           `db:"history_id"`
	AdjustmentID string           `db:"adjustment_id"`
	FromStatus   AdjustmentStatus `db:"from_status"`
	ToStatus     AdjustmentStatus `db:"to_status"`
	UserID       string           `db:"user_id"`
	Comment      string           `db:"comment"`
	ChangedAt    time.Time        `db:"changed_at"`
}

// Attachment is the DB representation of a file attached to an adjustment.
type Attachment struct {
	AttachmentID string    `db:"attachment_id"`
	AdjustmentID string    `db:"adjustment_id"`
	FileName     string    `db:"file_name"`
	StoragePath  string    `db:"storage_path"`
	Description  string    `db:"description"`
	SizeBytes    int64     `db:"size_bytes"`
	ContentType  string    `db:"content_type"`
	UploadedBy   string    `db:"uploaded_by"`
	UploadedAt   time.Time `db:"uploaded_at"`
}

// Comment is the DB representation of a comment on an adjustment.
type Comment struct {
	CommentID    string    `db:"comment_id"`
	AdjustmentID string    `db:"adjustment_id"`
	UserID       string    `db:"user_id"`
	Text         string    `db:"comment_text"`
	IsInternal   bool      `db:"is_internal"`
	CreatedAt    time.Time `db:"created_at"`
}
