package service

import (
	"fmt"

	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
	"github.com/miles-brown/The-Words-Record-sub005/pkg/encrypt"
	"gorm.io/gorm"
)

// SettingService manages per-user notification integrations. Webhook URLs are
// AES-encrypted at rest because shoutrrr URLs embed tokens.
type SettingService struct {
	db     *gorm.DB
	aesKey string
}

func NewSettingService(db *gorm.DB, aesKey string) *SettingService {
	return &SettingService{db: db, aesKey: aesKey}
}

// GetByUserID returns the user's setting with the webhook URL decrypted, or
// nil when none exists.
func (s *SettingService) GetByUserID(userID uint) (*model.IntegrationSetting, error) {
	var setting model.IntegrationSetting
	err := s.db.Where("user_id = ?", userID).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if setting.WebhookURL != "" {
		plain, err := encrypt.AESDecrypt(s.aesKey, setting.WebhookURL)
		if err != nil {
			return nil, fmt.Errorf("decrypt webhook url: %w", err)
		}
		setting.WebhookURL = plain
	}
	return &setting, nil
}

func (s *SettingService) Upsert(userID uint, webhookURL string, enabled bool) (*model.IntegrationSetting, error) {
	encrypted := ""
	if webhookURL != "" {
		var err error
		encrypted, err = encrypt.AESEncrypt(s.aesKey, webhookURL)
		if err != nil {
			return nil, fmt.Errorf("encrypt webhook url: %w", err)
		}
	}

	var setting model.IntegrationSetting
	err := s.db.Where("user_id = ?", userID).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		setting = model.IntegrationSetting{
			UserID:     userID,
			WebhookURL: encrypted,
			Enabled:    enabled,
		}
		if err := s.db.Create(&setting).Error; err != nil {
			return nil, err
		}
		setting.WebhookURL = webhookURL
		return &setting, nil
	}
	if err != nil {
		return nil, err
	}

	setting.WebhookURL = encrypted
	setting.Enabled = enabled
	if err := s.db.Save(&setting).Error; err != nil {
		return nil, err
	}
	setting.WebhookURL = webhookURL
	return &setting, nil
}
