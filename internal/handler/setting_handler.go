package handler

import (
	"errors"
	"net/http"

	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/enkellaering/admin-backend/internal/response"
	"github.com/enkellaering/admin-backend/internal/service"
	"github.com/enkellaering/admin-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

type SettingHandler struct {
	settingService *service.SettingService
}

func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// GetAllSettings godoc
// GET /api/v1/admin/settings
func (h *SettingHandler) GetAllSettings(c *gin.Context) {
	settings, err := h.settingService.GetAllSettings(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings godoc
// PUT /api/v1/admin/settings
func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	var req model.UpdateSettingsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.settingService.UpdateSettings(c.Request.Context(), req.Settings)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{"message": "settings updated"})
	case errors.Is(err, service.ErrUnknownSetting):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrUnknownSetting, map[string]string{"settings": err.Error()})
	case errors.Is(err, service.ErrInvalidSetting):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"settings": err.Error()})
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
