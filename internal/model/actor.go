package model

import (
	"time"

	"gorm.io/gorm"
)

type Person struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Slug        string         `gorm:"type:varchar(128);uniqueIndex;not null" json:"slug"`
	Name        string         `gorm:"type:varchar(256);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Profession  string         `gorm:"type:varchar(128)" json:"profession"`
	Nationality string         `gorm:"type:varchar(128)" json:"nationality"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Person) TableName() string { return "people" }

type Organization struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Slug        string         `gorm:"type:varchar(128);uniqueIndex;not null" json:"slug"`
	Name        string         `gorm:"type:varchar(256);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Type        string         `gorm:"type:varchar(64)" json:"type"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Organization) TableName() string { return "organizations" }
