package dto

import (
	"time"

	"github.com/finreg/adjustments_app/internal/core/domain"
)

// AttachmentResponse defines the data returned for a stored attachment.
// The storage path is never exposed; files are fetched through the download endpoint.
type AttachmentResponse struct {
	AttachmentID string    `json:"attachmentID"`
	AdjustmentID string    `json:"adjustmentID"`
	FileName     string    `json:"fileName"`
	Description  string    `json:"description"`
	ContentType  string    `json:"contentType"`
	SizeBytes    int64     `json:"sizeBytes"`
	UploadedBy   string    `json:"uploadedBy"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// CreateCommentRequest defines the data needed to add a comment to an adjustment.
type CreateCommentRequest struct {
	Text       string `json:"text" binding:"required,max=2000"`
	IsInternal bool   `json:"isInternal"`
}

// CommentResponse defines the data returned for a comment.
type CommentResponse struct {
	CommentID    string    `json:"commentID"`
	AdjustmentID string    `json:"adjustmentID"`
	UserID       string    `json:"userID"`
	Text         string    `json:"text"`
	IsInternal   bool      `json:"isInternal"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToAttachmentResponse converts a domain.Attachment to its DTO.
func ToAttachmentResponse(a *domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		AttachmentID: a.AttachmentID,
		AdjustmentID: a.AdjustmentID,
		FileName:     a.FileName,
		Description:  a.Description,
		ContentType:  a.ContentType,
		SizeBytes:    a.SizeBytes,
		UploadedBy:   a.UploadedBy,
		UploadedAt:   a.UploadedAt,
	}
}

// ToAttachmentResponses converts a slice of attachments to DTOs.
func ToAttachmentResponses(attachments []domain.Attachment) []AttachmentResponse {
	responses := make([]AttachmentResponse, len(attachments))
	for i, a := range attachments {
		responses[i] = ToAttachmentResponse(&a)
	}
	return responses
}

// ToCommentResponse converts a domain.Comment to its DTO.
func ToCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		CommentID:    c.CommentID,
		AdjustmentID: c.AdjustmentID,
		UserID:       c.UserID,
		Text:         c.Text,
		IsInternal:   c.IsInternal,
		CreatedAt:    c.CreatedAt,
	}
}

// ToCommentResponses converts a slice of comments to DTOs.
func ToCommentResponses(comments []domain.Comment) []CommentResponse {
	responses := make([]CommentResponse, len(comments))
	for i, c := range comments {
		responses[i] = ToCommentResponse(&c)
	}
	return responses
}
