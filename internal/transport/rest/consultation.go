package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"telemed/internal/domain"
)

// @Summary Create consultation
// @Description Creates a consultation from a confirmed booking and provisions a meeting room
// @Tags Consultations
// @Accept json
// @Produce json
// @Param input body domain.CreateConsultationDTO true "Consultation data"
// @Success 201 {object} domain.Consultation
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 503 {object} errorResponseBody "No video provider available"
// @Security ApiKeyAuth
// @Router /consultations [post]
func (h *Handler) createConsultation(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "authorization required")
		return
	}

	var req domain.CreateConsultationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("malformed request body", zap.Error(err))
		badRequestResponse(c, "malformed request body")
		return
	}

	consultation, err := h.services.Consultation.Create(c.Request.Context(), identity, req)
	if err != nil {
		h.logger.Error("failed to create consultation", zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, consultation)
}

// @Summary Get consultation
// @Tags Consultations
// @Produce json
// @Param id path int true "Consultation ID"
// @Success 200 {object} domain.Consultation
// @Failure 404 {object} errorResponseBody "Not found"
// @Security ApiKeyAuth
// @Router /consultations/{id} [get]
func (h *Handler) getConsultationByID(c *gin.Context) {
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

	consultation, err := h.services.Consultation.GetByID(c.Request.Context(), identity, id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, consultation)
}

// @Summary List consultations
// @Description Lists the caller's consultations, filtered and paginated
// @Tags Consultations
// @Produce json
// @Param status query string false "Status filter"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} paginatedResponse
// @Security ApiKeyAuth
// @Router /consultations [get]
func (h *Handler) listConsultations(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "authorization required")
		return
	}

	page, pageSize := parsePagination(c)
	filter := domain.ConsultationFilter{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.ConsultationStatus(statusStr)
		filter.Status = &status
	}

	consultations, total, err := h.services.Consultation.List(c.Request.Context(), identity, filter)
	if err != nil {
		h.logger.Error("failed to list consultations", zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	paginatedSuccessResponse(c, consultations, total, page, pageSize)
}

// @Summary Consultation availability
// @Description Reports whether the consultation can start or admit the patient right now
// @Tags Consultations
// @Produce json
// @Param id path int true "Consultation ID"
// @Success 200 {object} domain.ConsultationAvailability
// @Security ApiKeyAuth
// @Router /consultations/{id}/availability [get]
func (h *Handler) getConsultationAvailability(c *gin.Context) {
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

	availability, err := h.services.Consultation.Availability(c.Request.Context(), identity, id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, availability)
}

// @Summary Update consultation details
// @Description Updates notes and other non-lifecycle fields
// @Tags Consultations
// @Accept json
// @Produce json
// @Param id path int true "Consultation ID"
// @Param input body domain.UpdateConsultationDTO true "Fields to update"
// @Success 200 {object} domain.Consultation
// @Security ApiKeyAuth
// @Router /consultations/{id} [put]
func (h *Handler) updateConsultation(c *gin.Context) {
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

	var req domain.UpdateConsultationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	consultation, err := h.services.Consultation.UpdateDetails(c.Request.Context(), identity, id, req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, consultation)
}

// @Summary Start consultation
// @Description Moves the consultation to in_progress; exactly one concurrent attempt wins
// @Tags Consultations
// @Produce json
// @Param id path int true "Consultation ID"
// @Success 200 {object} domain.Consultation
// @Failure 409 {object} errorResponseBody "Already started or invalid transition"
// @Security ApiKeyAuth
// @Router /consultations/{id}/start [post]
func (h *Handler) startConsultation(c *gin.Context) {
	h.transition(c, h.services.Consultation.Start)
}

// @Summary End consultation
// @Tags Consultations
// @Produce json
// @Param id path int true "Consultation ID"
// @Success 200 {object} domain.Consultation
// @Failure 409 {object} errorResponseBody "Invalid transition"
// @Security ApiKeyAuth
// @Router /consultations/{id}/end [post]
func (h *Handler) endConsultation(c *gin.Context) {
	h.transition(c, h.services.Consultation.End)
}

// @Summary Cancel consultation
// @Tags Consultations
// @Produce json
// @Param id path int true "Consultation ID"
// @Success 200 {object} domain.Consultation
// @Security ApiKeyAuth
// @Router /consultations/{id}/cancel [post]
func (h *Handler) cancelConsultation(c *gin.Context) {
	h.transition(c, h.services.Consultation.Cancel)
}

// @Summary Mark consultation as no-show
// @Tags Consultations
// @Produce json
// @Param id path int true "Consultation ID"
// @Success 200 {object} domain.Consultation
// @Security ApiKeyAuth
// @Router /consultations/{id}/no-show [post]
func (h *Handler) markConsultationNoShow(c *gin.Context) {
	h.transition(c, h.services.Consultation.MarkNoShow)
}

// @Summary Reschedule consultation
// @Tags Consultations
// @Accept json
// @Produce json
// @Param id path int true "Consultation ID"
// @Param input body domain.RescheduleDTO true "New scheduled start"
// @Success 200 {object} domain.Consultation
// @Security ApiKeyAuth
// @Router /consultations/{id}/reschedule [post]
func (h *Handler) rescheduleConsultation(c *gin.Context) {
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

	var req domain.RescheduleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	consultation, err := h.services.Consultation.Reschedule(c.Request.Context(), identity, id, req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, consultation)
}

// @Summary Delete consultation
// @Description Soft-deletes the consultation; the row is retained for audit
// @Tags Consultations
// @Param id path int true "Consultation ID"
// @Success 204
// @Security ApiKeyAuth
// @Router /consultations/{id} [delete]
func (h *Handler) deleteConsultation(c *gin.Context) {
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

	if err := h.services.Consultation.Delete(c.Request.Context(), identity, id); err != nil {
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, identity domain.Identity, id int64) (*domain.Consultation, error)) {
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

	consultation, err := op(c.Request.Context(), identity, id)
	if err != nil {
		h.logger.Warn("consultation transition rejected",
			zap.Int64("consultation_id", id), zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, consultation)
}

func parseIDParam(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
