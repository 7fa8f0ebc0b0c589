package mapping

import (
	"database/sql"
	"time"

	"github.com/finreg/adjustments_app/internal/core/domain"
	"github.com/finreg/adjustments_app/internal/models"
)

func nullStringFromPtr(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func ptrFromNullString(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}

func nullTimeFromPtr(p *time.Time) sql.NullTime {
	if p == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *p, Valid: true}
}

func ptrFromNullTime(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

// ToModelAdjustment converts a domain Adjustment to a model Adjustment
func ToModelAdjustment(d domain.Adjustment) models.Adjustment {
	return models.Adjustment{
		AdjustmentID:         d.AdjustmentID,
		SequenceNumber:       d.SequenceNumber,
		AdjustmentDate:       d.AdjustmentDate,
		ValueDate:            d.ValueDate,
		TypeID:               d.TypeID,
		DebitAccountID:       d.DebitAccountID,
		CreditAccountID:      d.CreditAccountID,
		Amount:               d.Amount,
		CurrencyCode:         d.CurrencyCode,
		Concept:              d.Concept,
		Description:          d.Description,
		Justification:        d.Justification,
		Notes:                d.Notes,
		Status:               models.AdjustmentStatus(d.Status),
		Priority:             models.AdjustmentPriority(d.Priority),
		CreatedByUserID:      d.CreatedByUserID,
		ApprovedByUserID:     nullStringFromPtr(d.ApprovedByUserID),
		ProcessedByUserID:    nullStringFromPtr(d.ProcessedByUserID),
		ApprovedAt:           nullTimeFromPtr(d.ApprovedAt),
		ProcessedAt:          nullTimeFromPtr(d.ProcessedAt),
		ExpiryDate:           nullTimeFromPtr(d.ExpiryDate),
		SourceDocumentNumber: d.SourceDocumentNumber,
		ExternalReference:    d.ExternalReference,
		CostCenter:           d.CostCenter,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAdjustment converts a model Adjustment to a domain Adjustment
func ToDomainAdjustment(m models.Adjustment) domain.Adjustment {
	return domain.Adjustment{
		AdjustmentID:         m.AdjustmentID,
		SequenceNumber:       m.SequenceNumber,
		AdjustmentDate:       m.AdjustmentDate,
		ValueDate:            m.ValueDate,
		TypeID:               m.TypeID,
		DebitAccountID:       m.DebitAccountID,
		CreditAccountID:      m.CreditAccountID,
		Amount:               m.Amount,
		CurrencyCode:         m.CurrencyCode,
		Concept:              m.Concept,
		Description:          m.Description,
		Justification:        m.Justification,
		Notes:                m.Notes,
		Status:               domain.AdjustmentStatus(m.Status),
		Priority:             domain.AdjustmentPriority(m.Priority),
		CreatedByUserID:      m.CreatedByUserID,
		ApprovedByUserID:     ptrFromNullString(m.ApprovedByUserID),
		ProcessedByUserID:    ptrFromNullString(m.ProcessedByUserID),
		ApprovedAt:           ptrFromNullTime(m.ApprovedAt),
		ProcessedAt:          ptrFromNullTime(m.ProcessedAt),
		ExpiryDate:           ptrFromNullTime(m.ExpiryDate),
		SourceDocumentNumber: m.SourceDocumentNumber,
		ExternalReference:    m.ExternalReference,
		CostCenter:           m.CostCenter,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAdjustmentSlice converts a slice of model Adjustments to domain Adjustments
func ToDomainAdjustmentSlice(ms []models.Adjustment) []domain.Adjustment {
	ds := make([]domain.Adjustment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAdjustment(m)
	}
	return ds
}

// ToModelHistoryEntry converts a domain HistoryEntry to its model
func ToModelHistoryEntry(d domain.HistoryEntry) models.HistoryEntry {
	return models.HistoryEntry{
		HistoryID:    d.HistoryID,
		AdjustmentID: d.AdjustmentID,
		FromStatus:   models.AdjustmentStatus(d.FromStatus),
		ToStatus:     models.AdjustmentStatus(d.ToStatus),
		UserID:       d.UserID,
		Comment:      d.Comment,
		ChangedAt:    d.ChangedAt,
	}
}

// ToDomainHistoryEntry converts a model HistoryEntry to its domain form
func ToDomainHistoryEntry(m models.HistoryEntry) domain.HistoryEntry {
	return domain.HistoryEntry{
		HistoryID:    m.HistoryID,
		AdjustmentID: m.AdjustmentID,
		FromStatus:   domain.AdjustmentStatus(m.FromStatus),
		ToStatus:     domain.AdjustmentStatus(m.ToStatus),
		UserID:       m.UserID,
		Comment:      m.Comment,
		ChangedAt:    m.ChangedAt,
	}
}

// ToDomainHistoryEntrySlice converts a slice of model history entries to domain form
func ToDomainHistoryEntrySlice(ms []models.HistoryEntry) []domain.HistoryEntry {
	ds := make([]domain.HistoryEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainHistoryEntry(m)
	}
	return ds
}

// ToModelAttachment converts a domain Attachment to its model
func ToModelAttachment(d domain.Attachment) models.Attachment {
	return models.Attachment{
		AttachmentID: d.AttachmentID,
		AdjustmentID: d.AdjustmentID,
		FileName:     d.FileName,
		StoragePath:  d.StoragePath,
		Description:  d.Description,
		SizeBytes:    d.SizeBytes,
		ContentType:  d.ContentType,
		UploadedBy:   d.UploadedBy,
		UploadedAt:   d.UploadedAt,
	}
}

// ToDomainAttachment converts a model Attachment to its domain form
func ToDomainAttachment(m models.Attachment) domain.Attachment {
	return domain.Attachment{
		AttachmentID: m.AttachmentID,
		AdjustmentID: m.AdjustmentID,
		FileName:     m.FileName,
		StoragePath:  m.StoragePath,
		Description:  m.Description,
		SizeBytes:    m.SizeBytes,
		ContentType:  m.ContentType,
		UploadedBy:   m.UploadedBy,
		UploadedAt:   m.UploadedAt,
	}
}

// ToDomainAttachmentSlice converts a slice of model attachments to domain form
func ToDomainAttachmentSlice(ms []models.Attachment) []domain.Attachment {
	ds := make([]domain.Attachment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAttachment(m)
	}
	return ds
}

// ToModelComment converts a domain Comment to its model
func ToModelComment(d domain.Comment) models.Comment {
	return models.Comment{
		CommentID:    d.CommentID,
		AdjustmentID: d.AdjustmentID,
		UserID:       d.UserID,
		Text:         d.Text,
		IsInternal:   d.IsInternal,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainComment converts a model Comment to its domain form
func ToDomainComment(m models.Comment) domain.Comment {
	return domain.Comment{
		CommentID:    m.CommentID,
		AdjustmentID: m.AdjustmentID,
		UserID:       m.UserID,
		Text:         m.Text,
		IsInternal:   m.IsInternal,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainCommentSlice converts a slice of model comments to domain form
func ToDomainCommentSlice(ms []models.Comment) []domain.Comment {
	ds := make([]domain.Comment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainComment(m)
	}
	return ds
}
