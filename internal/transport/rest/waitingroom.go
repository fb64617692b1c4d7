package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @Summary Join waiting room
// @Description Puts the patient into the doctor's queue; allowed from 30 minutes before to 2 hours after the scheduled start
// @Tags Waiting room
// @Produce json
// @Param id path int true "Consultation ID"
// @Success 200 {object} domain.WaitingRoom
// @Failure 422 {object} errorResponseBody "Outside the join window"
// @Security ApiKeyAuth
// @Router /consultations/{id}/waiting-room [post]
func (h *Handler) joinWaitingRoom(c *gin.Context) {
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

	room, err := h.services.WaitingRoom.Join(c.Request.Context(), identity, id)
	if err != nil {
		h.logger.Warn("waiting room join rejected",
			zap.Int64("consultation_id", id), zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, room)
}

// @Summary Notify doctor
// @Description Flags the waiting patient on the doctor's dashboard
// @Tags Waiting room
// @Produce json
// @Param id path int true "Consultation ID"
// @Success 200 {object} domain.WaitingRoom
// @Security ApiKeyAuth
// @Router /consultations/{id}/waiting-room/notify [post]
func (h *Handler) notifyDoctor(c *gin.Context) {
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

	room, err := h.services.WaitingRoom.NotifyDoctor(c.Request.Context(), identity, id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, room)
}

// @Summary Waiting room status
// @Description Returns queue position, wait estimate and staleness for the consultation
// @Tags Waiting room
// @Produce json
// @Param id path int true "Consultation ID"
// @Success 200 {object} domain.WaitingRoomStatus
// @Security ApiKeyAuth
// @Router /consultations/{id}/waiting-room [get]
func (h *Handler) getWaitingRoom(c *gin.Context) {
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

	status, err := h.services.WaitingRoom.Get(c.Request.Context(), identity, id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, status)
}

type updateWaitRequest struct {
	Minutes int `json:"minutes" binding:"min=0"`
}

// @Summary Update wait estimate
// @Tags Waiting room
// @Accept json
// @Param id path int true "Consultation ID"
// @Param input body updateWaitRequest true "Estimate in minutes"
// @Success 204
// @Security ApiKeyAuth
// @Router /consultations/{id}/waiting-room/wait [put]
func (h *Handler) updateEstimatedWait(c *gin.Context) {
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

	var req updateWaitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	if err := h.services.WaitingRoom.UpdateEstimatedWait(c.Request.Context(), identity, id, req.Minutes); err != nil {
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

type updatePositionRequest struct {
	Position int `json:"position" binding:"min=1"`
}

// @Summary Update queue position
// @Tags Waiting room
// @Accept json
// @Param id path int true "Consultation ID"
// @Param input body updatePositionRequest true "New position"
// @Success 204
// @Security ApiKeyAuth
// @Router /consultations/{id}/waiting-room/position [put]
func (h *Handler) updateQueuePosition(c *gin.Context) {
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

	var req updatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	if err := h.services.WaitingRoom.UpdateQueuePosition(c.Request.Context(), identity, id, req.Position); err != nil {
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Doctor's waiting list
// @Description Active waiting rooms across the calling doctor's consultations
// @Tags Waiting room
// @Produce json
// @Success 200 {array} domain.WaitingRoomStatus
// @Security ApiKeyAuth
// @Router /waiting-rooms [get]
func (h *Handler) listWaitingRooms(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "authorization required")
		return
	}

	statuses, err := h.services.WaitingRoom.ListActiveByDoctor(c.Request.Context(), identity)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, statuses)
}
