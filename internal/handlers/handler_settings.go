package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/quarry_billing_app/internal/core/ports/services"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
	"github.com/SscSPs/quarry_billing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

func registerSettingsRoutes(rg *gin.RouterGroup, ss portssvc.SettingsSvcFacade) {
	h := &settingsHandler{settingsService: ss}

	settings := rg.Group("/settings")
	{
		settings.GET("", h.listSettings)
		settings.PUT("/:key", h.updateSetting)
	}
}

// listSettings godoc
// @Summary List settings
// @Tags settings
// @Produce  json
// @Param   category query string false "Only this category"
// @Success 200 {object} map[string][]domain.Setting
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list settings"
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) listSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListSettingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}

	settings, err := h.settingsService.ListSettings(c.Request.Context(), params.Category)
	if err != nil {
		respondError(c, logger, err, "Failed to list settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// updateSetting godoc
// @Summary Update a setting
// @Description Billing keys are validated and always stored in the billing category
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   key path string true "Setting key"
// @Param   setting body dto.UpdateSettingRequest true "New value"
// @Success 200 {object} domain.Setting
// @Failure 400 {object} ErrorResponse "Invalid value"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to update setting"
// @Security BearerAuth
// @Router /settings/{key} [put]
func (h *settingsHandler) updateSetting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	key := c.Param("key")
	var req dto.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "setting update")
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	setting, err := h.settingsService.UpdateSetting(c.Request.Context(), key, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update setting")
		return
	}

	c.JSON(http.StatusOK, setting)
}
