package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"telemed/internal/domain"
)

const maxAttachmentSize = 25 << 20 // 25 MB

// @Summary Send message
// @Description Appends a message to the consultation timeline and broadcasts it to subscribers
// @Tags Messages
// @Accept json
// @Produce json
// @Param id path int true "Consultation ID"
// @Param input body domain.CreateMessageDTO true "Message"
// @Success 201 {object} domain.ConsultationMessage
// @Failure 403 {object} errorResponseBody "Private messages require a clinician role"
// @Security ApiKeyAuth
// @Router /consultations/{id}/messages [post]
func (h *Handler) sendMessage(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "authorization required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "malformed consultation id")
		return
	}

	var req domain.CreateMessageDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	message, err := h.services.Message.Send(c.Request.Context(), identity, id, req)
	if err != nil {
		h.logger.Warn("message rejected",
			zap.Int64("consultation_id", id), zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, message)
}

// @Summary Message history
// @Description Chronological, paginated timeline; private entries are filtered by the caller's role
// @Tags Messages
// @Produce json
// @Param id path int true "Consultation ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} paginatedResponse
// @Security ApiKeyAuth
// @Router /consultations/{id}/messages [get]
func (h *Handler) getMessageHistory(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "authorization required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "malformed consultation id")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, total, err := h.services.Message.History(c.Request.Context(), identity, id, limit, offset)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	page := 1
	if limit > 0 {
		page = offset/limit + 1
	}
	paginatedSuccessResponse(c, messages, int(total), page, limit)
}

// @Summary Attach file
// @Description Uploads an attachment and records it as a file message on the timeline
// @Tags Messages
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Consultation ID"
// @Param file formData file true "Attachment"
// @Param is_private formData bool false "Restrict to clinician roles"
// @Success 201 {object} domain.ConsultationMessage
// @Security ApiKeyAuth
// @Router /consultations/{id}/attachments [post]
func (h *Handler) attachFile(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "authorization required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "malformed consultation id")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequestResponse(c, "missing file")
		return
	}
	if fileHeader.Size > maxAttachmentSize {
		badRequestResponse(c, "file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequestResponse(c, "unreadable file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAttachmentSize))
	if err != nil {
		h.logger.Error("failed to read attachment", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	isPrivate := c.PostForm("is_private") == "true"

	message, err := h.services.Message.AttachFile(c.Request.Context(), identity, id, fileHeader.Filename, data, isPrivate)
	if err != nil {
		h.logger.Error("failed to attach file",
			zap.Int64("consultation_id", id), zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, message)
}
