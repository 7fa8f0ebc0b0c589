package pgsql

import (
	"context"
	"errors"

	"github.com/finreg/adjustments_app/internal/apperrors"
	"github.com/finreg/adjustments_app/internal/core/domain"
	portsrepo "github.com/finreg/adjustments_app/internal/core/ports/repositories"
	"github.com/finreg/adjustments_app/internal/models"
	"github.com/finreg/adjustments_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAttachmentRepository struct {
	BaseRepository
}

// newPgxAttachmentRepository creates a new repository for attachment metadata
// and comments. File bytes live on disk; only metadata is stored here.
func newPgxAttachmentRepository(pool *pgxpool.Pool) portsrepo.AttachmentRepositoryFacade {
	return &PgxAttachmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAttachmentRepository implements portsrepo.AttachmentRepositoryFacade
var _ portsrepo.AttachmentRepositoryFacade = (*PgxAttachmentRepository)(nil)

// SaveAttachment persists a new attachment record.
func (r *PgxAttachmentRepository) SaveAttachment(ctx context.Context, attachment domain.Attachment) error {
	m := mapping.ToModelAttachment(attachment)

	query := `
		INSERT INTO adjustment_attachments (
			attachment_id, adjustment_id, file_name, storage_path,
			description, size_bytes, content_type, uploaded_by, uploaded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AttachmentID,
		m.AdjustmentID,
		m.FileName,
		m.StoragePath,
		m.Description,
		m.SizeBytes,
		m.ContentType,
		m.UploadedBy,
		m.UploadedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return apperrors.ErrDuplicate
			}
			if pgErr.Code == "23503" { // Foreign key violation
				return apperrors.NewNotFoundError("adjustment " + m.AdjustmentID + " not found for attachment")
			}
		}
		return apperrors.NewAppError(500, "failed to insert attachment "+m.AttachmentID, err)
	}

	return nil
}

// FindAttachmentByID retrieves a specific attachment record.
func (r *PgxAttachmentRepository) FindAttachmentByID(ctx context.Context, attachmentID string) (*domain.Attachment, error) {
	query := `
		SELECT attachment_id, adjustment_id, file_name, storage_path,
		       description, size_bytes, content_type, uploaded_by, uploaded_at
		FROM adjustment_attachments
		WHERE attachment_id = $1;
	`
	var m models.Attachment
	err := r.Pool.QueryRow(ctx, query, attachmentID).Scan(
		&m.AttachmentID,
		&m.AdjustmentID,
		&m.FileName,
		&m.StoragePath,
		&m.Description,
		&m.SizeBytes,
		&m.ContentType,
		&m.UploadedBy,
		&m.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find attachment by ID "+attachmentID, err)
	}

	d := mapping.ToDomainAttachment(m)
	return &d, nil
}

// FindAttachmentsByAdjustmentID returns an adjustment's attachments, newest first.
func (r *PgxAttachmentRepository) FindAttachmentsByAdjustmentID(ctx context.Context, adjustmentID string) ([]domain.Attachment, error) {
	query := `
		SELECT attachment_id, adjustment_id, file_name, storage_path,
		       description, size_bytes, content_type, uploaded_by, uploaded_at
		FROM adjustment_attachments
		WHERE adjustment_id = $1
		ORDER BY uploaded_at DESC, attachment_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, adjustmentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query attachments for adjustment "+adjustmentID, err)
	}
	defer rows.Close()

	attachments := []models.Attachment{}
	for rows.Next() {
		var m models.Attachment
		if err := rows.Scan(
			&m.AttachmentID,
			&m.AdjustmentID,
			&m.FileName,
			&m.StoragePath,
			&m.Description,
			&m.SizeBytes,
			&m.ContentType,
			&m.UploadedBy,
			&m.UploadedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan attachment row", err)
		}
		attachments = append(attachments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating attachment rows", err)
	}

	return mapping.ToDomainAttachmentSlice(attachments), nil
}

// SaveComment persists a new comment.
func (r *PgxAttachmentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	m := mapping.ToModelComment(comment)

	query := `
		INSERT INTO adjustment_comments (comment_id, adjustment_id, user_id, comment_text, is_internal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CommentID,
		m.AdjustmentID,
		m.UserID,
		m.Text,
		m.IsInternal,
		m.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewNotFoundError("adjustment " + m.AdjustmentID + " not found for comment")
		}
		return apperrors.NewAppError(500, "failed to insert comment "+m.CommentID, err)
	}

	return nil
}

// FindCommentsByAdjustmentID returns an adjustment's comments, newest first.
// Internal comments are filtered out unless includeInternal is set.
func (r *PgxAttachmentRepository) FindCommentsByAdjustmentID(ctx context.Context, adjustmentID string, includeInternal bool) ([]domain.Comment, error) {
	query := `
		SELECT comment_id, adjustment_id, user_id, comment_text, is_internal, created_at
		FROM adjustment_comments
		WHERE adjustment_id = $1 AND ($2 OR NOT is_internal)
		ORDER BY created_at DESC, comment_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, adjustmentID, includeInternal)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query comments for adjustment "+adjustmentID, err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var m models.Comment
		if err := rows.Scan(
			&m.CommentID,
			&m.AdjustmentID,
			&m.UserID,
			&m.Text,
			&m.IsInternal,
			&m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan comment row", err)
		}
		comments = append(comments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating comment rows", err)
	}

	return mapping.ToDomainCommentSlice(comments), nil
}
