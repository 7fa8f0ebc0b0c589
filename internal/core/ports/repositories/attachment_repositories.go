package repositories

import (
	"context"

	"github.com/finreg/adjustments_app/internal/core/domain"
)

// AttachmentReader defines read operations for attachment metadata.
type AttachmentReader interface {
	// FindAttachmentByID retrieves a specific attachment record.
	FindAttachmentByID(ctx context.Context, attachmentID string) (*domain.Attachment, error)

	// FindAttachmentsByAdjustmentID returns an adjustment's attachments, newest first.
	FindAttachmentsByAdjustmentID(ctx context.Context, adjustmentID string) ([]domain.Attachment, error)
}

// AttachmentWriter defines write operations for attachment metadata.
type AttachmentWriter interface {
	// SaveAttachment persists a new attachment record. Attachments are immutable
	// once created; there is no update operation.
	SaveAttachment(ctx context.Context, attachment domain.Attachment) error
}

// CommentReader defines read operations for comments.
type CommentReader interface {
	// FindCommentsByAdjustmentID returns an adjustment's comments, newest first.
	// When includeInternal is false, internal-only comments are omitted.
	FindCommentsByAdjustmentID(ctx context.Context, adjustmentID string, includeInternal bool) ([]domain.Comment, error)
}

// CommentWriter defines write operations for comments.
type CommentWriter interface {
	// SaveComment persists a new comment. Comments are immutable once created.
	SaveComment(ctx context.Context, comment domain.Comment) error
}

// AttachmentRepositoryFacade combines attachment and comment repository interfaces.
type AttachmentRepositoryFacade interface {
	AttachmentReader
	AttachmentWriter
	CommentReader
	CommentWriter
}
