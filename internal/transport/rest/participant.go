package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"telemed/internal/domain"
)

type joinConsultationRequest struct {
	Role domain.UserRole `json:"role" binding:"required,oneof=doctor patient observer assistant"`
}

// @Summary Join consultation
// @Description Records the caller's presence in the session; re-joining refreshes the record
// @Tags Participants
// @Accept json
// @Produce json
// @Param id path int true "Consultation ID"
// @Param input body joinConsultationRequest true "Participant role"
// @Success 200 {object} domain.ConsultationParticipant
// @Security ApiKeyAuth
// @Router /consultations/{id}/participants [post]
func (h *Handler) joinConsultation(c *gin.Context) {
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

	var req joinConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	participant, err := h.services.Participant.Join(c.Request.Context(), identity, id, req.Role)
	if err != nil {
		h.logger.Warn("participant join rejected",
			zap.Int64("consultation_id", id), zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, participant)
}

// @Summary Leave consultation
// @Tags Participants
// @Param id path int true "Consultation ID"
// @Success 204
// @Security ApiKeyAuth
// @Router /consultations/{id}/participants [delete]
func (h *Handler) leaveConsultation(c *gin.Context) {
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

	if err := h.services.Participant.Leave(c.Request.Context(), identity, id); err != nil {
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Consultation roster
// @Description Every participant of the consultation, including those who left
// @Tags Participants
// @Produce json
// @Param id path int true "Consultation ID"
// @Success 200 {array} domain.ConsultationParticipant
// @Security ApiKeyAuth
// @Router /consultations/{id}/participants [get]
func (h *Handler) getParticipants(c *gin.Context) {
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

	participants, err := h.services.Participant.Roster(c.Request.Context(), identity, id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, participants)
}

// @Summary Subscribe to consultation events
// @Description Upgrades to a websocket carrying the consultation's ordered event stream
// @Tags Events
// @Param id path int true "Consultation ID"
// @Param token query string false "Access token (alternative to the Authorization header)"
// @Security ApiKeyAuth
// @Router /ws/consultations/{id} [get]
func (h *Handler) subscribeConsultation(c *gin.Context) {
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

	// Subscription requires read access to the consultation.
	if _, err := h.services.Consultation.GetByID(c.Request.Context(), identity, id); err != nil {
		domainErrorResponse(c, err)
		return
	}

	h.hub.Attach(c, identity, id)
}
