package model

import (
	"time"

	"gorm.io/gorm"
)

// Source is a citation attached to a statement. Distinct publication names
// across a statement's sources drive the media outlet criterion.
type Source struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	StatementID string         `gorm:"type:varchar(36);not null;index:idx_source_statement" json:"statement_id"`
	Publication string         `gorm:"type:varchar(256)" json:"publication"`
	Author      string         `gorm:"type:varchar(256)" json:"author"`
	URL         string         `gorm:"type:varchar(1024)" json:"url"`
	PublishedAt *time.Time     `json:"published_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Source) TableName() string { return "sources" }
