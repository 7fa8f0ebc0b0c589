package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/finreg/adjustments_app/internal/apperrors"
	"github.com/finreg/adjustments_app/internal/core/domain"
	portssvc "github.com/finreg/adjustments_app/internal/core/ports/services"
	"github.com/finreg/adjustments_app/internal/core/services"
	"github.com/finreg/adjustments_app/internal/dto"
	"github.com/finreg/adjustments_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adjustmentHandler handles HTTP requests related to adjustments.
type adjustmentHandler struct {
	adjustmentService portssvc.AdjustmentSvcFacade
}

// newAdjustmentHandler creates a new adjustmentHandler.
func newAdjustmentHandler(adjustmentService portssvc.AdjustmentSvcFacade) *adjustmentHandler {
	return &adjustmentHandler{
		adjustmentService: adjustmentService,
	}
}

// writeAdjustmentError maps service errors onto HTTP responses. The sentinel
// set is shared across adjustment endpoints, so the mapping lives in one place.
func writeAdjustmentError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	var invalidTransition *domain.InvalidTransitionError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Adjustment resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Adjustment not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden adjustment operation", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.As(err, &invalidTransition):
		logger.Warn("Invalid lifecycle transition", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotEditable):
		logger.Warn("Adjustment not editable", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrApprovalLimitExceeded):
		logger.Warn("Approval limit exceeded", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrSameAccount),
		errors.Is(err, services.ErrAmountOutOfRange),
		errors.Is(err, services.ErrTypeInactive),
		errors.Is(err, services.ErrAccountInactive),
		errors.Is(err, services.ErrExpiryBeforeDate),
		errors.Is(err, services.ErrAttachmentEmpty),
		errors.Is(err, services.ErrAttachmentTooLarge):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

// createAdjustment godoc
// @Summary Create a new adjustment
// @Description Registers a new adjustment in DRAFT with an assigned sequence number
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   adjustment body dto.CreateAdjustmentRequest true "Adjustment details"
// @Success 201 {object} dto.AdjustmentResponse "The created adjustment"
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create adjustment"
// @Router /adjustments [post]
func (h *adjustmentHandler) createAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	adjustment, err := h.adjustmentService.CreateAdjustment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		writeAdjustmentError(c, logger, err, "Failed to create adjustment")
		return
	}

	logger.Info("Adjustment created",
		slog.String("adjustment_id", adjustment.AdjustmentID),
		slog.String("sequence_number", adjustment.SequenceNumber))
	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(adjustment))
}

// getAdjustment godoc
// @Summary Get an adjustment
// @Description Retrieves an adjustment by ID, subject to visibility rules
// @Tags adjustments
// @Produce  json
// @Param   adjustmentID path string true "Adjustment ID"
// @Success 200 {object} dto.AdjustmentResponse "The adjustment"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve adjustment"
// @Router /adjustments/{adjustmentID} [get]
func (h *adjustmentHandler) getAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	adjustment, err := h.adjustmentService.GetAdjustmentByID(c.Request.Context(), adjustmentID, requestingUserID)
	if err != nil {
		writeAdjustmentError(c, logger, err, "Failed to retrieve adjustment")
		return
	}

	c.JSON(http.StatusOK, dto.ToAdjustmentResponse(adjustment))
}

// listAdjustments godoc
// @Summary List adjustments
// @Description Retrieves a filtered, token-paginated list of adjustments visible to the caller
// @Tags adjustments
// @Produce  json
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Pagination token from the previous page"
// @Param   status query []string false "Status filter, repeatable"
// @Param   mine query bool false "Only adjustments created by the caller"
// @Success 200 {object} dto.ListAdjustmentsResponse "A page of adjustments"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list adjustments"
// @Router /adjustments [get]
func (h *adjustmentHandler) listAdjustments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAdjustmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listAdjustments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.adjustmentService.ListAdjustments(c.Request.Context(), requestingUserID, params)
	if err != nil {
		writeAdjustmentError(c, logger, err, "Failed to list adjustments")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listPendingApproval godoc
// @Summary List adjustments pending approval
// @Description Retrieves the adjustments currently awaiting an approval decision; requires the approve capability
// @Tags adjustments
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListAdjustmentsResponse "A page of pending adjustments"
// @Failure 403 {object} map[string]string "Caller lacks the approve capability"
// @Failure 500 {object} map[string]string "Failed to list adjustments"
// @Router /adjustments/pending-approval [get]
func (h *adjustmentHandler) listPendingApproval(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAdjustmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listPendingApproval", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.adjustmentService.ListPendingApproval(c.Request.Context(), requestingUserID, params)
	if err != nil {
		writeAdjustmentError(c, logger, err, "Failed to list adjustments")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateAdjustment godoc
// @Summary Update an adjustment
// @Description Updates the editable fields of an adjustment while it is in an editable state
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   adjustmentID path string true "Adjustment ID"
// @Param   adjustment body dto.UpdateAdjustmentRequest true "Fields to update"
// @Success 200 {object} dto.AdjustmentResponse "The updated adjustment"
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Failure 409 {object} map[string]string "Adjustment not editable"
// @Router /adjustments/{adjustmentID} [put]
func (h *adjustmentHandler) updateAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	var req dto.UpdateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	adjustment, err := h.adjustmentService.UpdateAdjustment(c.Request.Context(), adjustmentID, req, requestingUserID)
	if err != nil {
		writeAdjustmentError(c, logger, err, "Failed to update adjustment")
		return
	}

	logger.Info("Adjustment updated", slog.String("adjustment_id", adjustmentID))
	c.JSON(http.StatusOK, dto.ToAdjustmentResponse(adjustment))
}

// deleteAdjustments godoc
// @Summary Delete adjustments
// @Description Deletes one or more editable adjustments, all or nothing
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkDeleteRequest true "IDs to delete"
// @Success 200 {object} dto.BulkDeleteResponse "Number of adjustments deleted"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "One or more adjustments not found"
// @Failure 409 {object} map[string]string "One or more adjustments not editable"
// @Router /adjustments [delete]
func (h *adjustmentHandler) deleteAdjustments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for deleteAdjustments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.adjustmentService.DeleteAdjustments(c.Request.Context(), req.AdjustmentIDs, requestingUserID); err != nil {
		writeAdjustmentError(c, logger, err, "Failed to delete adjustments")
		return
	}

	logger.Info("Adjustments deleted", slog.Int("count", len(req.AdjustmentIDs)))
	c.JSON(http.StatusOK, dto.BulkDeleteResponse{Deleted: len(req.AdjustmentIDs)})
}

// transitionAdjustment godoc
// @Summary Transition an adjustment
// @Description Moves an adjustment to a new lifecycle status, enforcing the transition table and caller capabilities
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   adjustmentID path string true "Adjustment ID"
// @Param   transition body dto.TransitionRequest true "Target status and optional comment"
// @Success 200 {object} dto.AdjustmentResponse "The adjustment after the transition"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Caller lacks the required capability"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Failure 409 {object} map[string]string "Transition not permitted from the current status"
// @Router /adjustments/{adjustmentID}/transition [post]
func (h *adjustmentHandler) transitionAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for transitionAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	adjustment, err := h.adjustmentService.RequestTransition(c.Request.Context(), adjustmentID, req, requestingUserID)
	if err != nil {
		writeAdjustmentError(c, logger, err, "Failed to transition adjustment")
		return
	}

	logger.Info("Adjustment transitioned",
		slog.String("adjustment_id", adjustmentID),
		slog.String("to_status", string(req.TargetStatus)))
	c.JSON(http.StatusOK, dto.ToAdjustmentResponse(adjustment))
}

// getHistory godoc
// @Summary Get an adjustment's transition history
// @Description Retrieves the append-only transition log, most recent first
// @Tags adjustments
// @Produce  json
// @Param   adjustmentID path string true "Adjustment ID"
// @Success 200 {array} dto.HistoryEntryResponse "Transition history"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Router /adjustments/{adjustmentID}/history [get]
func (h *adjustmentHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entries, err := h.adjustmentService.GetHistory(c.Request.Context(), adjustmentID, requestingUserID)
	if err != nil {
		writeAdjustmentError(c, logger, err, "Failed to retrieve history")
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryEntryResponses(entries))
}

// uploadAttachment godoc
// @Summary Attach a file to an adjustment
// @Description Uploads a file as multipart form data; size and content type are derived server-side
// @Tags adjustments
// @Accept  multipart/form-data
// @Produce  json
// @Param   adjustmentID path string true "Adjustment ID"
// @Param   file formData file true "The file to attach"
// @Param   description formData string false "Attachment description"
// @Success 201 {object} dto.AttachmentResponse "The attachment metadata"
// @Failure 400 {object} map[string]string "Missing file or content rejected"
// @Failure 409 {object} map[string]string "Adjustment not editable"
// @Router /adjustments/{adjustmentID}/attachments [post]
func (h *adjustmentHandler) uploadAttachment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Missing file in attachment upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file form field is required"})
		return
	}
	description := c.PostForm("description")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	attachment, err := h.adjustmentService.AttachFile(c.Request.Context(), adjustmentID, fileHeader.Filename, description, content, requestingUserID)
	if err != nil {
		writeAdjustmentError(c, logger, err, "Failed to store attachment")
		return
	}

	logger.Info("Attachment stored",
		slog.String("adjustment_id", adjustmentID),
		slog.String("attachment_id", attachment.AttachmentID))
	c.JSON(http.StatusCreated, dto.ToAttachmentResponse(attachment))
}

// listAttachments godoc
// @Summary List an adjustment's attachments
// @Tags adjustments
// @Produce  json
// @Param   adjustmentID path string true "Adjustment ID"
// @Success 200 {array} dto.AttachmentResponse "Attachment metadata, newest first"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Router /adjustments/{adjustmentID}/attachments [get]
func (h *adjustmentHandler) listAttachments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	attachments, err := h.adjustmentService.ListAttachments(c.Request.Context(), adjustmentID, requestingUserID)
	if err != nil {
		writeAdjustmentError(c, logger, err, "Failed to list attachments")
		return
	}

	c.JSON(http.StatusOK, dto.ToAttachmentResponses(attachments))
}

// downloadAttachment godoc
// @Summary Download an attachment
// @Description Streams the stored file content with its original name and content type
// @Tags adjustments
// @Produce  octet-stream
// @Param   adjustmentID path string true "Adjustment ID"
// @Param   attachmentID path string true "Attachment ID"
// @Success 200 {file} binary "The file content"
// @Failure 404 {object} map[string]string "Attachment not found"
// @Router /adjustments/{adjustmentID}/attachments/{attachmentID} [get]
func (h *adjustmentHandler) downloadAttachment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	attachmentID := c.Param("attachmentID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	attachment, reader, err := h.adjustmentService.OpenAttachment(c.Request.Context(), attachmentID, requestingUserID)
	if err != nil {
		writeAdjustmentError(c, logger, err, "Failed to open attachment")
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+attachment.FileName+`"`)
	c.Header("Content-Length", strconv.FormatInt(attachment.SizeBytes, 10))
	c.DataFromReader(http.StatusOK, attachment.SizeBytes, attachment.ContentType, reader, nil)
}

// addComment godoc
// @Summary Comment on an adjustment
// @Description Records a comment; allowed in every lifecycle state
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   adjustmentID path string true "Adjustment ID"
// @Param   comment body dto.CreateCommentRequest true "Comment text"
// @Success 201 {object} dto.CommentResponse "The created comment"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Router /adjustments/{adjustmentID}/comments [post]
func (h *adjustmentHandler) addComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for addComment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	comment, err := h.adjustmentService.AddComment(c.Request.Context(), adjustmentID, req, requestingUserID)
	if err != nil {
		writeAdjustmentError(c, logger, err, "Failed to add comment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

// listComments godoc
// @Summary List an adjustment's comments
// @Description Retrieves comments newest first; internal comments only for reviewers
// @Tags adjustments
// @Produce  json
// @Param   adjustmentID path string true "Adjustment ID"
// @Success 200 {array} dto.CommentResponse "Comments"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Router /adjustments/{adjustmentID}/comments [get]
func (h *adjustmentHandler) listComments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	comments, err := h.adjustmentService.ListComments(c.Request.Context(), adjustmentID, requestingUserID)
	if err != nil {
		writeAdjustmentError(c, logger, err, "Failed to list comments")
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentResponses(comments))
}

// RegisterAdjustmentRoutes registers adjustment specific routes
func RegisterAdjustmentRoutes(group *gin.RouterGroup, adjustmentService portssvc.AdjustmentSvcFacade) {
	handler := newAdjustmentHandler(adjustmentService)

	adjustments := group.Group("/adjustments")
	{
		adjustments.POST("", handler.createAdjustment)
		adjustments.GET("", handler.listAdjustments)
		adjustments.DELETE("", handler.deleteAdjustments)
		adjustments.GET("/pending-approval", handler.listPendingApproval)
		adjustments.GET("/:adjustmentID", handler.getAdjustment)
		adjustments.PUT("/:adjustmentID", handler.updateAdjustment)
		adjustments.POST("/:adjustmentID/transition", handler.transitionAdjustment)
		adjustments.GET("/:adjustmentID/history", handler.getHistory)
		adjustments.POST("/:adjustmentID/attachments", handler.uploadAttachment)
		adjustments.GET("/:adjustmentID/attachments", handler.listAttachments)
		adjustments.GET("/:adjustmentID/attachments/:attachmentID", handler.downloadAttachment)
		adjustments.POST("/:adjustmentID/comments", handler.addComment)
		adjustments.GET("/:adjustmentID/comments", handler.listComments)
	}
}
