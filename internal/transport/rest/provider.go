package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"telemed/internal/domain"
)

// @Summary List video providers
// @Tags Providers
// @Produce json
// @Success 200 {array} domain.VideoProviderConfig
// @Security ApiKeyAuth
// @Router /providers [get]
func (h *Handler) listProviders(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "authorization required")
		return
	}

	providers, err := h.services.Provider.List(c.Request.Context(), identity)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, providers)
}

// @Summary Get video provider
// @Tags Providers
// @Produce json
// @Param provider path string true "Provider name"
// @Success 200 {object} domain.VideoProviderConfig
// @Security ApiKeyAuth
// @Router /providers/{provider} [get]
func (h *Handler) getProvider(c *gin.Context) {
	provider := domain.VideoProvider(c.Param("provider"))

	cfg, err := h.services.Provider.Get(c.Request.Context(), provider)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, cfg)
}

// @Summary Update video provider
// @Description Updates feature flags, limits and priority; bounds are validated
// @Tags Providers
// @Accept json
// @Produce json
// @Param provider path string true "Provider name"
// @Param input body domain.UpdateProviderDTO true "Fields to update"
// @Success 200 {object} domain.VideoProviderConfig
// @Security ApiKeyAuth
// @Router /providers/{provider} [put]
func (h *Handler) updateProvider(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "authorization required")
		return
	}

	provider := domain.VideoProvider(c.Param("provider"))

	var req domain.UpdateProviderDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	cfg, err := h.services.Provider.Update(c.Request.Context(), identity, provider, req)
	if err != nil {
		h.logger.Warn("provider update rejected",
			zap.String("provider", string(provider)), zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, cfg)
}

// @Summary Rotate provider credentials
// @Tags Providers
// @Accept json
// @Param provider path string true "Provider name"
// @Param input body domain.UpdateProviderCredentialsDTO true "New credentials"
// @Success 204
// @Security ApiKeyAuth
// @Router /providers/{provider}/credentials [put]
func (h *Handler) updateProviderCredentials(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "authorization required")
		return
	}

	provider := domain.VideoProvider(c.Param("provider"))

	var req domain.UpdateProviderCredentialsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	if err := h.services.Provider.UpdateCredentials(c.Request.Context(), identity, provider, req); err != nil {
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Select provider
// @Description Picks the best currently-usable provider for the required capabilities
// @Tags Providers
// @Accept json
// @Produce json
// @Param input body domain.SelectProviderDTO true "Required capabilities"
// @Success 200 {object} domain.VideoProviderConfig
// @Failure 503 {object} errorResponseBody "No provider available"
// @Security ApiKeyAuth
// @Router /providers/select [post]
func (h *Handler) selectProvider(c *gin.Context) {
	var req domain.SelectProviderDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	cfg, err := h.services.Provider.SelectProvider(c.Request.Context(), req.RequiredCapabilities)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, cfg)
}
