package services

import (
	"context"
	"io"

	"github.com/finreg/adjustments_app/internal/core/domain"
	"github.com/finreg/adjustments_app/internal/dto"
)

// AdjustmentReaderSvc defines read operations for adjustment data
type AdjustmentReaderSvc interface {
	// GetAdjustmentByID retrieves a specific adjustment by its ID.
	GetAdjustmentByID(ctx context.Context, adjustmentID string, requestingUserID string) (*domain.Adjustment, error)

	// ListAdjustments retrieves a filtered, paginated list of adjustments.
	ListAdjustments(ctx context.Context, requestingUserID string, params dto.ListAdjustmentsParams) (*dto.ListAdjustmentsResponse, error)

	// ListPendingApproval retrieves the adjustments awaiting an approval
	// decision. Callers without the approve capability are refused.
	ListPendingApproval(ctx context.Context, requestingUserID string, params dto.ListAdjustmentsParams) (*dto.ListAdjustmentsResponse, error)

	// GetHistory retrieves the full transition log of an adjustment, most recent first.
	GetHistory(ctx context.Context, adjustmentID string, requestingUserID string) ([]domain.HistoryEntry, error)
}

// AdjustmentWriterSvc defines write operations for adjustment data
type AdjustmentWriterSvc interface {
	// CreateAdjustment persists a new adjustment in DRAFT with an assigned
	// sequence number.
	CreateAdjustment(ctx context.Context, req dto.CreateAdjustmentRequest, creatorUserID string) (*domain.Adjustment, error)

	// UpdateAdjustment updates an adjustment's editable fields. Only permitted
	// while the adjustment is editable.
	UpdateAdjustment(ctx context.Context, adjustmentID string, req dto.UpdateAdjustmentRequest, requestingUserID string) (*domain.Adjustment, error)

	// DeleteAdjustments removes adjustments and their dependents, all or
	// nothing. Only adjustments in an editable state can be deleted.
	DeleteAdjustments(ctx context.Context, adjustmentIDs []string, requestingUserID string) error
}

// AdjustmentLifecycleSvc defines the state machine operations.
type AdjustmentLifecycleSvc interface {
	// RequestTransition moves an adjustment to the target status, enforcing the
	// transition table, the caller's capabilities, and the approval limit. On
	// success the status change and its history entry are persisted atomically.
	RequestTransition(ctx context.Context, adjustmentID string, req dto.TransitionRequest, requestingUserID string) (*domain.Adjustment, error)
}

// AttachmentSvc defines operations for adjustment attachments.
type AttachmentSvc interface {
	// AttachFile stores file content and its metadata against an adjustment.
	// Size and content type are derived from the bytes, not from the caller.
	// Only permitted while the adjustment is editable.
	AttachFile(ctx context.Context, adjustmentID string, fileName string, description string, content []byte, requestingUserID string) (*domain.Attachment, error)

	// ListAttachments returns an adjustment's attachment records, newest first.
	ListAttachments(ctx context.Context, adjustmentID string, requestingUserID string) ([]domain.Attachment, error)

	// OpenAttachment returns an attachment's metadata and a reader over its
	// stored content. The caller must close the reader.
	OpenAttachment(ctx context.Context, attachmentID string, requestingUserID string) (*domain.Attachment, io.ReadCloser, error)
}

// CommentSvc defines operations for adjustment comments.
type CommentSvc interface {
	// AddComment records a comment. Allowed in every lifecycle state.
	AddComment(ctx context.Context, adjustmentID string, req dto.CreateCommentRequest, requestingUserID string) (*domain.Comment, error)

	// ListComments returns an adjustment's comments, newest first. Internal
	// comments are included only for callers with the approve capability.
	ListComments(ctx context.Context, adjustmentID string, requestingUserID string) ([]domain.Comment, error)
}

// AdjustmentSvcFacade combines all adjustment-related service interfaces
// This is a facade for clients that need access to all operations
type AdjustmentSvcFacade interface {
	AdjustmentReaderSvc
	AdjustmentWriterSvc
	AdjustmentLifecycleSvc
	AttachmentSvc
	CommentSvc
}
