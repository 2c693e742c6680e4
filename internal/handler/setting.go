package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/miles-brown/The-Words-Record-sub005/internal/middleware"
	"github.com/miles-brown/The-Words-Record-sub005/internal/service"
)

type SettingHandler struct {
	settingService *service.SettingService
}

func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// GET /settings/notifications
func (h *SettingHandler) GetNotificationSettings(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	setting, err := h.settingService.GetByUserID(userID)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	if setting == nil {
		Success(c, gin.H{"configured": false})
		return
	}
	Success(c, gin.H{
		"configured":  true,
		"enabled":     setting.Enabled,
		"webhook_url": setting.WebhookURL,
		"updated_at":  setting.UpdatedAt,
	})
}

// PUT /settings/notifications
func (h *SettingHandler) UpdateNotificationSettings(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var req struct {
		WebhookURL string `json:"webhook_url"`
		Enabled    bool   `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "validation failed: "+err.Error())
		return
	}

	setting, err := h.settingService.Upsert(userID, req.WebhookURL, req.Enabled)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{
		"enabled":    setting.Enabled,
		"updated_at": setting.UpdatedAt,
	})
}
