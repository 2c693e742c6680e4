package model

import (
	"time"

	"gorm.io/gorm"
)

// IntegrationSetting holds a user's notification integration. The webhook URL
// is stored AES-encrypted because shoutrrr URLs embed credentials.
type IntegrationSetting struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	WebhookURL string         `gorm:"type:varchar(1024)" json:"-"`
	Enabled    bool           `gorm:"default:true" json:"enabled"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (IntegrationSetting) TableName() string { return "integration_settings" }
