package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"telemed/internal/domain"
)

// @Summary Report technical issue
// @Description Records a technical problem during the consultation and alerts subscribers
// @Tags Issues
// @Accept json
// @Produce json
// @Param id path int true "Consultation ID"
// @Param input body domain.ReportIssueDTO true "Issue details"
// @Success 201 {object} domain.TechnicalIssue
// @Security ApiKeyAuth
// @Router /consultations/{id}/issues [post]
func (h *Handler) reportIssue(c *gin.Context) {
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

	var req domain.ReportIssueDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	issue, err := h.services.Issue.Report(c.Request.Context(), identity, id, req)
	if err != nil {
		h.logger.Error("failed to report issue",
			zap.Int64("consultation_id", id), zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, issue)
}

// @Summary List technical issues
// @Tags Issues
// @Produce json
// @Param id path int true "Consultation ID"
// @Param open query bool false "Only unresolved issues"
// @Success 200 {array} domain.TechnicalIssue
// @Security ApiKeyAuth
// @Router /consultations/{id}/issues [get]
func (h *Handler) listIssues(c *gin.Context) {
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

	openOnly := c.Query("open") == "true"

	issues, err := h.services.Issue.ListByConsultation(c.Request.Context(), identity, id, openOnly)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, issues)
}

// @Summary Resolve technical issue
// @Tags Issues
// @Accept json
// @Produce json
// @Param id path int true "Issue ID"
// @Param input body domain.ResolveIssueDTO true "Resolution notes"
// @Success 200 {object} domain.TechnicalIssue
// @Security ApiKeyAuth
// @Router /issues/{id}/resolve [post]
func (h *Handler) resolveIssue(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "authorization required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "malformed issue id")
		return
	}

	var req domain.ResolveIssueDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	issue, err := h.services.Issue.Resolve(c.Request.Context(), identity, id, req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, issue)
}
