package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/finreg/adjustments_app/internal/apperrors"
	"github.com/finreg/adjustments_app/internal/core/domain"
	portsrepo "github.com/finreg/adjustments_app/internal/core/ports/repositories"
	portssvc "github.com/finreg/adjustments_app/internal/core/ports/services"
	"github.com/finreg/adjustments_app/internal/dto"
	"github.com/finreg/adjustments_app/internal/platform/config"
	"github.com/shopspring/decimal"
)

var (
	ErrSameAccount           = errors.New("debit and credit accounts must be different")
	ErrAmountOutOfRange      = errors.New("amount must be between -999999999999.99 and -0.01")
	ErrTypeInactive          = errors.New("adjustment type is inactive")
	ErrAccountInactive       = errors.New("account is inactive")
	ErrExpiryBeforeDate      = errors.New("expiry date precedes the adjustment date")
	ErrAttachmentEmpty       = errors.New("attachment content is empty")
	ErrAttachmentTooLarge    = errors.New("attachment exceeds the maximum allowed size")
	ErrApprovalLimitExceeded = errors.New("adjustment amount exceeds the approver's limit")
)

// adjustmentService implements the lifecycle core: creation, editing, the
// state machine, attachments, and comments.
type adjustmentService struct {
	BaseService
	cfg            *config.Config
	adjustmentRepo portsrepo.AdjustmentRepositoryWithTx
	attachmentRepo portsrepo.AttachmentRepositoryFacade
	accountRepo    portsrepo.AccountReader
	typeRepo       portsrepo.AdjustmentTypeReader
	currencyRepo   portsrepo.CurrencyReader
	userSvc        portssvc.UserSvcFacade
}

// NewAdjustmentService creates a new AdjustmentService.
func NewAdjustmentService(
	cfg *config.Config,
	adjustmentRepo portsrepo.AdjustmentRepositoryWithTx,
	attachmentRepo portsrepo.AttachmentRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	typeRepo portsrepo.AdjustmentTypeReader,
	currencyRepo portsrepo.CurrencyReader,
	userSvc portssvc.UserSvcFacade,
) portssvc.AdjustmentSvcFacade {
	return &adjustmentService{
		cfg:            cfg,
		adjustmentRepo: adjustmentRepo,
		attachmentRepo: attachmentRepo,
		accountRepo:    accountRepo,
		typeRepo:       typeRepo,
		currencyRepo:   currencyRepo,
		userSvc:        userSvc,
	}
}

// Ensure adjustmentService implements the portssvc.AdjustmentSvcFacade interface
var _ portssvc.AdjustmentSvcFacade = (*adjustmentService)(nil)

// validateAmount enforces the deficit sign convention: amounts are negative,
// at most -0.01 and no less than the floor.
func (s *adjustmentService) validateAmount(amount decimal.Decimal) error {
	if amount.GreaterThan(domain.AmountCeiling) || amount.LessThan(domain.AmountFloor) {
		return fmt.Errorf("%w: got %s", ErrAmountOutOfRange, amount.String())
	}
	return nil
}

// validateReferences checks that the type, both accounts, and the currency
// exist and are usable for a new or edited adjustment.
func (s *adjustmentService) validateReferences(ctx context.Context, typeID, debitAccountID, creditAccountID, currencyCode string) error {
	if debitAccountID == creditAccountID {
		return ErrSameAccount
	}

	adjType, err := s.typeRepo.FindTypeByID(ctx, typeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: adjustment type %s not found", apperrors.ErrValidation, typeID)
		}
		return fmt.Errorf("failed to fetch adjustment type: %w", err)
	}
	if !adjType.IsActive {
		return fmt.Errorf("%w: %s", ErrTypeInactive, typeID)
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, []string{debitAccountID, creditAccountID})
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, accountID := range []string{debitAccountID, creditAccountID} {
		account, found := accountsMap[accountID]
		if !found {
			return fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, accountID)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: %s", ErrAccountInactive, accountID)
		}
	}

	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: currency %s not found", apperrors.ErrValidation, currencyCode)
		}
		return fmt.Errorf("failed to fetch currency: %w", err)
	}

	return nil
}

// CreateAdjustment persists a new adjustment in DRAFT.
// Implements portssvc.AdjustmentSvcFacade
func (s *adjustmentService) CreateAdjustment(ctx context.Context, req dto.CreateAdjustmentRequest, creatorUserID string) (*domain.Adjustment, error) {
	logger := s.GetLogger(ctx)

	if err := s.validateAmount(req.Amount); err != nil {
		return nil, err
	}

	currencyCode := req.CurrencyCode
	if currencyCode == "" {
		currencyCode = s.cfg.DefaultCurrencyCode
	}

	if err := s.validateReferences(ctx, req.TypeID, req.DebitAccountID, req.CreditAccountID, currencyCode); err != nil {
		return nil, err
	}

	if req.ExpiryDate != nil && req.ExpiryDate.Before(req.AdjustmentDate) {
		return nil, ErrExpiryBeforeDate
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now().UTC()
	adjustment := domain.Adjustment{
		AdjustmentID:         uuid.NewString(),
		AdjustmentDate:       req.AdjustmentDate,
		ValueDate:            req.ValueDate,
		TypeID:               req.TypeID,
		DebitAccountID:       req.DebitAccountID,
		CreditAccountID:      req.CreditAccountID,
		Amount:               req.Amount,
		CurrencyCode:         currencyCode,
		Concept:              req.Concept,
		Description:          req.Description,
		Justification:        req.Justification,
		Notes:                req.Notes,
		Status:               domain.StatusDraft,
		Priority:             priority,
		CreatedByUserID:      creatorUserID,
		ExpiryDate:           req.ExpiryDate,
		SourceDocumentNumber: req.SourceDocumentNumber,
		ExternalReference:    req.ExternalReference,
		CostCenter:           req.CostCenter,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// The repository assigns the sequence number from a database sequence
	// inside the insert transaction.
	saved, err := s.adjustmentRepo.SaveAdjustment(ctx, adjustment)
	if err != nil {
		logger.Error("Failed to save adjustment", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save adjustment: %w", err)
	}

	logger.Info("Adjustment created",
		slog.String("adjustment_id", saved.AdjustmentID),
		slog.String("sequence_number", saved.SequenceNumber))
	return saved, nil
}

// canView reports whether a user may see an adjustment. Admins see everything;
// reviewers (approve or process capability) see every record they may act on;
// everyone else sees only adjustments they took part in.
func canView(user *domain.User, adjustment *domain.Adjustment) bool {
	if user.Role == domain.RoleAdmin || user.CanApprove || user.CanProcess {
		return true
	}
	if adjustment.CreatedByUserID == user.UserID {
		return true
	}
	if adjustment.ApprovedByUserID != nil && *adjustment.ApprovedByUserID == user.UserID {
		return true
	}
	if adjustment.ProcessedByUserID != nil && *adjustment.ProcessedByUserID == user.UserID {
		return true
	}
	return false
}

// findVisibleAdjustment fetches an adjustment and enforces visibility for the
// requesting user. Existence is obscured with NotFound on visibility failure.
func (s *adjustmentService) findVisibleAdjustment(ctx context.Context, adjustmentID string, requestingUserID string) (*domain.Adjustment, *domain.User, error) {
	adjustment, err := s.adjustmentRepo.FindAdjustmentByID(ctx, adjustmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find adjustment %s: %w", adjustmentID, err)
	}

	user, err := s.userSvc.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch requesting user: %w", err)
	}

	if !canView(user, adjustment) {
		return nil, nil, apperrors.ErrNotFound
	}
	return adjustment, user, nil
}

// GetAdjustmentByID retrieves a specific adjustment by its ID.
// Implements portssvc.AdjustmentSvcFacade
func (s *adjustmentService) GetAdjustmentByID(ctx context.Context, adjustmentID string, requestingUserID string) (*domain.Adjustment, error) {
	adjustment, _, err := s.findVisibleAdjustment(ctx, adjustmentID, requestingUserID)
	if err != nil {
		return nil, err
	}
	return adjustment, nil
}

// ListAdjustments retrieves a filtered, paginated list of adjustments.
func (s *adjustmentService) ListAdjustments(ctx context.Context, requestingUserID string, params dto.ListAdjustmentsParams) (*dto.ListAdjustmentsResponse, error) {
	logger := s.GetLogger(ctx)

	user, err := s.userSvc.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch requesting user: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	filter := portsrepo.ListAdjustmentsFilter{
		Statuses:        params.Statuses,
		Priority:        params.Priority,
		TypeIDs:         params.TypeIDs,
		DebitAccountID:  params.DebitAccountID,
		CreditAccountID: params.CreditAccountID,
		CurrencyCode:    params.CurrencyCode,
		DateFrom:        params.DateFrom,
		DateTo:          params.DateTo,
		AmountMin:       params.AmountMin,
		AmountMax:       params.AmountMax,
		Search:          params.Search,
	}
	if params.Mine {
		filter.CreatedByUserID = &requestingUserID
	}
	if user.Role != domain.RoleAdmin && !user.CanApprove && !user.CanProcess {
		filter.InvolvedUserID = &requestingUserID
	}

	adjustments, nextToken, err := s.adjustmentRepo.ListAdjustments(ctx, filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list adjustments", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve adjustments: %w", err)
	}

	resp := dto.ToListAdjustmentsResponse(adjustments, nextToken)
	logger.Debug("Adjustments listed", slog.Int("count", len(adjustments)))
	return &resp, nil
}

// ListPendingApproval lists the adjustments awaiting an approval decision.
// The view is reserved for callers holding the approve capability, and any
// caller-supplied status filter is replaced with PENDING.
func (s *adjustmentService) ListPendingApproval(ctx context.Context, requestingUserID string, params dto.ListAdjustmentsParams) (*dto.ListAdjustmentsResponse, error) {
	allowed, err := s.userSvc.HasCapability(ctx, requestingUserID, domain.CapabilityApprove)
	if err != nil {
		return nil, fmt.Errorf("failed to check capability: %w", err)
	}
	if !allowed {
		s.GetLogger(ctx).Warn("Pending approval view refused", slog.String("user_id", requestingUserID))
		return nil, fmt.Errorf("%w: pending approval view requires %s", apperrors.ErrForbidden, domain.CapabilityApprove)
	}

	params.Statuses = []domain.AdjustmentStatus{domain.StatusPending}
	return s.ListAdjustments(ctx, requestingUserID, params)
}

// GetHistory retrieves the full transition log of an adjustment, most recent first.
func (s *adjustmentService) GetHistory(ctx context.Context, adjustmentID string, requestingUserID string) ([]domain.HistoryEntry, error) {
	if _, _, err := s.findVisibleAdjustment(ctx, adjustmentID, requestingUserID); err != nil {
		return nil, err
	}

	entries, err := s.adjustmentRepo.FindHistoryByAdjustmentID(ctx, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve history for adjustment %s: %w", adjustmentID, err)
	}
	return entries, nil
}

// UpdateAdjustment updates an adjustment's editable fields.
// Implements portssvc.AdjustmentSvcFacade
func (s *adjustmentService) UpdateAdjustment(ctx context.Context, adjustmentID string, req dto.UpdateAdjustmentRequest, requestingUserID string) (*domain.Adjustment, error) {
	logger := s.GetLogger(ctx)

	adjustment, _, err := s.findVisibleAdjustment(ctx, adjustmentID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if !adjustment.CanEdit() {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrNotEditable, adjustment.Status)
	}

	updated := false
	if req.AdjustmentDate != nil {
		adjustment.AdjustmentDate = *req.AdjustmentDate
		updated = true
	}
	if req.ValueDate != nil {
		adjustment.ValueDate = *req.ValueDate
		updated = true
	}
	if req.TypeID != nil {
		adjustment.TypeID = *req.TypeID
		updated = true
	}
	if req.DebitAccountID != nil {
		adjustment.DebitAccountID = *req.DebitAccountID
		updated = true
	}
	if req.CreditAccountID != nil {
		adjustment.CreditAccountID = *req.CreditAccountID
		updated = true
	}
	if req.Amount != nil {
		if err := s.validateAmount(*req.Amount); err != nil {
			return nil, err
		}
		adjustment.Amount = *req.Amount
		updated = true
	}
	if req.CurrencyCode != nil {
		adjustment.CurrencyCode = *req.CurrencyCode
		updated = true
	}
	if req.Concept != nil {
		adjustment.Concept = *req.Concept
		updated = true
	}
	if req.Description != nil {
		adjustment.Description = *req.Description
		updated = true
	}
	if req.Justification != nil {
		adjustment.Justification = *req.Justification
		updated = true
	}
	if req.Notes != nil {
		adjustment.Notes = *req.Notes
		updated = true
	}
	if req.Priority != nil {
		if !domain.ValidPriority(*req.Priority) {
			return nil, fmt.Errorf("%w: unknown priority %s", apperrors.ErrValidation, *req.Priority)
		}
		adjustment.Priority = *req.Priority
		updated = true
	}
	if req.ExpiryDate != nil {
		adjustment.ExpiryDate = req.ExpiryDate
		updated = true
	}
	if req.SourceDocumentNumber != nil {
		adjustment.SourceDocumentNumber = *req.SourceDocumentNumber
		updated = true
	}
	if req.ExternalReference != nil {
		adjustment.ExternalReference = *req.ExternalReference
		updated = true
	}
	if req.CostCenter != nil {
		adjustment.CostCenter = *req.CostCenter
		updated = true
	}

	if !updated {
		logger.Debug("No fields provided for adjustment update", slog.String("adjustment_id", adjustmentID))
		return adjustment, nil
	}

	// Reference checks run against the post-update field values so a partial
	// account swap cannot slip past the debit/credit distinctness rule.
	if err := s.validateReferences(ctx, adjustment.TypeID, adjustment.DebitAccountID, adjustment.CreditAccountID, adjustment.CurrencyCode); err != nil {
		return nil, err
	}
	if adjustment.ExpiryDate != nil && adjustment.ExpiryDate.Before(adjustment.AdjustmentDate) {
		return nil, ErrExpiryBeforeDate
	}

	now := time.Now().UTC()
	adjustment.LastUpdatedAt = now
	adjustment.LastUpdatedBy = requestingUserID

	if err := s.adjustmentRepo.UpdateAdjustment(ctx, *adjustment); err != nil {
		logger.Error("Failed to save adjustment update", slog.String("error", err.Error()), slog.String("adjustment_id", adjustmentID))
		return nil, fmt.Errorf("failed to save adjustment update: %w", err)
	}

	logger.Info("Adjustment updated", slog.String("adjustment_id", adjustmentID))
	return adjustment, nil
}

// DeleteAdjustments removes adjustments and their dependents, all or nothing.
func (s *adjustmentService) DeleteAdjustments(ctx context.Context, adjustmentIDs []string, requestingUserID string) error {
	logger := s.GetLogger(ctx)

	if len(adjustmentIDs) == 0 {
		return fmt.Errorf("%w: no adjustment IDs provided", apperrors.ErrValidation)
	}

	user, err := s.userSvc.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return fmt.Errorf("failed to fetch requesting user: %w", err)
	}

	adjustmentsMap, err := s.adjustmentRepo.FindAdjustmentsByIDs(ctx, adjustmentIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch adjustments for deletion: %w", err)
	}

	// Every target must exist and be deletable before anything is removed.
	for _, adjustmentID := range adjustmentIDs {
		adjustment, found := adjustmentsMap[adjustmentID]
		if !found {
			return fmt.Errorf("%w: adjustment %s", apperrors.ErrNotFound, adjustmentID)
		}
		if !adjustment.CanEdit() {
			return fmt.Errorf("%w: adjustment %s is %s", domain.ErrNotEditable, adjustmentID, adjustment.Status)
		}
		if user.Role != domain.RoleAdmin && adjustment.CreatedByUserID != requestingUserID {
			return fmt.Errorf("%w: adjustment %s belongs to another user", apperrors.ErrForbidden, adjustmentID)
		}
	}

	if err := s.adjustmentRepo.DeleteAdjustments(ctx, adjustmentIDs); err != nil {
		logger.Error("Failed to delete adjustments", slog.String("error", err.Error()), slog.Int("count", len(adjustmentIDs)))
		return fmt.Errorf("failed to delete adjustments: %w", err)
	}

	logger.Info("Adjustments deleted", slog.Int("count", len(adjustmentIDs)))
	return nil
}

// RequestTransition moves an adjustment to the target status.
// Implements portssvc.AdjustmentSvcFacade
func (s *adjustmentService) RequestTransition(ctx context.Context, adjustmentID string, req dto.TransitionRequest, requestingUserID string) (*domain.Adjustment, error) {
	logger := s.GetLogger(ctx)

	if !domain.ValidStatus(req.TargetStatus) {
		return nil, fmt.Errorf("%w: unknown status %s", apperrors.ErrValidation, req.TargetStatus)
	}

	adjustment, user, err := s.findVisibleAdjustment(ctx, adjustmentID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(adjustment.Status, req.TargetStatus) {
		return nil, &domain.InvalidTransitionError{From: adjustment.Status, To: req.TargetStatus}
	}

	if capability, required := domain.RequiredCapability(req.TargetStatus); required {
		allowed, err := s.userSvc.HasCapability(ctx, requestingUserID, capability)
		if err != nil {
			return nil, fmt.Errorf("failed to check capability: %w", err)
		}
		if !allowed {
			logger.Warn("Capability check failed for transition",
				slog.String("adjustment_id", adjustmentID),
				slog.String("target", string(req.TargetStatus)),
				slog.String("user_id", requestingUserID))
			return nil, fmt.Errorf("%w: %s requires %s", apperrors.ErrForbidden, req.TargetStatus, capability)
		}
	}

	// Approvers with a configured limit may not approve above it.
	if req.TargetStatus == domain.StatusApproved && user.ApprovalLimit != nil {
		if adjustment.Amount.Abs().GreaterThan(*user.ApprovalLimit) {
			return nil, fmt.Errorf("%w: limit is %s", ErrApprovalLimitExceeded, user.ApprovalLimit.String())
		}
	}

	now := time.Now().UTC()
	fromStatus := adjustment.Status

	adjustment.Status = req.TargetStatus
	adjustment.LastUpdatedAt = now
	adjustment.LastUpdatedBy = requestingUserID
	switch req.TargetStatus {
	case domain.StatusApproved:
		adjustment.ApprovedByUserID = &requestingUserID
		adjustment.ApprovedAt = &now
	case domain.StatusProcessed:
		adjustment.ProcessedByUserID = &requestingUserID
		adjustment.ProcessedAt = &now
	}

	entry := domain.HistoryEntry{
		HistoryID:    uuid.NewString(),
		AdjustmentID: adjustmentID,
		FromStatus:   fromStatus,
		ToStatus:     req.TargetStatus,
		UserID:       requestingUserID,
		Comment:      req.Comment,
		ChangedAt:    now,
	}

	// Status change and history row land in one database transaction.
	if err := s.adjustmentRepo.SaveTransition(ctx, *adjustment, entry); err != nil {
		logger.Error("Failed to persist transition",
			slog.String("error", err.Error()),
			slog.String("adjustment_id", adjustmentID),
			slog.String("from", string(fromStatus)),
			slog.String("to", string(req.TargetStatus)))
		return nil, fmt.Errorf("failed to persist transition: %w", err)
	}

	logger.Info("Adjustment transitioned",
		slog.String("adjustment_id", adjustmentID),
		slog.String("from", string(fromStatus)),
		slog.String("to", string(req.TargetStatus)))
	return adjustment, nil
}

// AttachFile stores file content and metadata against an editable adjustment.
func (s *adjustmentService) AttachFile(ctx context.Context, adjustmentID string, fileName string, description string, content []byte, requestingUserID string) (*domain.Attachment, error) {
	logger := s.GetLogger(ctx)

	adjustment, _, err := s.findVisibleAdjustment(ctx, adjustmentID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if !adjustment.CanEdit() {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrNotEditable, adjustment.Status)
	}

	if len(content) == 0 {
		return nil, ErrAttachmentEmpty
	}
	if s.cfg.MaxAttachmentSizeBytes > 0 && int64(len(content)) > s.cfg.MaxAttachmentSizeBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrAttachmentTooLarge, len(content))
	}

	attachmentID := uuid.NewString()
	storagePath := filepath.Join(s.cfg.AttachmentDir, attachmentID+filepath.Ext(fileName))

	if err := os.MkdirAll(s.cfg.AttachmentDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare attachment directory: %w", err)
	}
	if err := os.WriteFile(storagePath, content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to store attachment content: %w", err)
	}

	attachment := domain.Attachment{
		AttachmentID: attachmentID,
		AdjustmentID: adjustmentID,
		FileName:     fileName,
		StoragePath:  storagePath,
		Description:  description,
		SizeBytes:    int64(len(content)),
		ContentType:  http.DetectContentType(content),
		UploadedBy:   requestingUserID,
		UploadedAt:   time.Now().UTC(),
	}

	if err := s.attachmentRepo.SaveAttachment(ctx, attachment); err != nil {
		// Keep the store and the disk consistent.
		if removeErr := os.Remove(storagePath); removeErr != nil {
			logger.Warn("Failed to remove orphaned attachment file", slog.String("path", storagePath), slog.String("error", removeErr.Error()))
		}
		logger.Error("Failed to save attachment metadata", slog.String("error", err.Error()), slog.String("adjustment_id", adjustmentID))
		return nil, fmt.Errorf("failed to save attachment: %w", err)
	}

	logger.Info("Attachment stored",
		slog.String("attachment_id", attachmentID),
		slog.String("adjustment_id", adjustmentID),
		slog.Int64("size_bytes", attachment.SizeBytes))
	return &attachment, nil
}

// ListAttachments returns an adjustment's attachment records, newest first.
func (s *adjustmentService) ListAttachments(ctx context.Context, adjustmentID string, requestingUserID string) ([]domain.Attachment, error) {
	if _, _, err := s.findVisibleAdjustment(ctx, adjustmentID, requestingUserID); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.FindAttachmentsByAdjustmentID(ctx, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve attachments for adjustment %s: %w", adjustmentID, err)
	}
	return attachments, nil
}

// OpenAttachment returns an attachment's metadata and a reader over its content.
func (s *adjustmentService) OpenAttachment(ctx context.Context, attachmentID string, requestingUserID string) (*domain.Attachment, io.ReadCloser, error) {
	attachment, err := s.attachmentRepo.FindAttachmentByID(ctx, attachmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find attachment %s: %w", attachmentID, err)
	}

	if _, _, err := s.findVisibleAdjustment(ctx, attachment.AdjustmentID, requestingUserID); err != nil {
		return nil, nil, err
	}

	file, err := os.Open(attachment.StoragePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: attachment content missing on disk", apperrors.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to open attachment content: %w", err)
	}
	return attachment, file, nil
}

// AddComment records a comment. Comments are accepted in every lifecycle
// state, unlike attachments.
func (s *adjustmentService) AddComment(ctx context.Context, adjustmentID string, req dto.CreateCommentRequest, requestingUserID string) (*domain.Comment, error) {
	logger := s.GetLogger(ctx)

	if _, _, err := s.findVisibleAdjustment(ctx, adjustmentID, requestingUserID); err != nil {
		return nil, err
	}

	comment := domain.Comment{
		CommentID:    uuid.NewString(),
		AdjustmentID: adjustmentID,
		UserID:       requestingUserID,
		Text:         req.Text,
		IsInternal:   req.IsInternal,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.attachmentRepo.SaveComment(ctx, comment); err != nil {
		logger.Error("Failed to save comment", slog.String("error", err.Error()), slog.String("adjustment_id", adjustmentID))
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	logger.Info("Comment added", slog.String("comment_id", comment.CommentID), slog.String("adjustment_id", adjustmentID))
	return &comment, nil
}

// ListComments returns an adjustment's comments, newest first. Internal
// comments are visible only to callers holding the approve capability.
func (s *adjustmentService) ListComments(ctx context.Context, adjustmentID string, requestingUserID string) ([]domain.Comment, error) {
	if _, _, err := s.findVisibleAdjustment(ctx, adjustmentID, requestingUserID); err != nil {
		return nil, err
	}

	includeInternal, err := s.userSvc.HasCapability(ctx, requestingUserID, domain.CapabilityApprove)
	if err != nil {
		return nil, fmt.Errorf("failed to check capability: %w", err)
	}

	comments, err := s.attachmentRepo.FindCommentsByAdjustmentID(ctx, adjustmentID, includeInternal)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve comments for adjustment %s: %w", adjustmentID, err)
	}
	return comments, nil
}
