package domain

import "time"

// Attachment is a supporting file owned by an adjustment.
// SizeBytes and ContentType are derived from the stored artifact itself,
// never taken from caller input. Immutable once created.
type Attachment struct {
	AttachmentID string    `json:"attachmentID"` // Primary Key (UUID)
	AdjustmentID string    `json:"adjustmentID"` // FK -> adjustments.adjustment_id
	FileName     string    `json:"fileName"`
	StoragePath  string    `json:"-"` // Location on the attachment store, not exposed
	Description  string    `json:"description"`
	SizeBytes    int64     `json:"sizeBytes"`
	ContentType  string    `json:"contentType"`
	UploadedBy   string    `json:"uploadedBy"` // UserID reference
	UploadedAt   time.Time `json:"uploadedAt"`
}

// Comment is a remark on an adjustment. Immutable once created.
type Comment struct {
	CommentID    string    `json:"commentID"`    // Primary Key (UUID)
	AdjustmentID string    `json:"adjustmentID"` // FK -> adjustments.adjustment_id
	UserID       string    `json:"userID"`       // Author
	Text         string    `json:"text"`
	IsInternal   bool      `json:"isInternal"` // Visible only to staff with the approve capability
	CreatedAt    time.Time `json:"createdAt"`
}
