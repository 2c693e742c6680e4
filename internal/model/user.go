package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"type:varchar(128);uniqueIndex:idx_email;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(128);not null" json:"-"`
	Name         string         `gorm:"type:varchar(64);not null" json:"name"`
	Role         string         `gorm:"type:varchar(10);not null;default:viewer;index:idx_role" json:"role"`
	IsAdmin      bool           `gorm:"default:false" json:"is_admin"`
	Status       int            `gorm:"default:1" json:"status"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

type UserBrief struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	IsAdmin bool   `json:"is_admin"`
}

func (u *User) Brief() UserBrief {
	return UserBrief{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		IsAdmin: u.IsAdmin,
	}
}
