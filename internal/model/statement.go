package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatementTypeOriginal = "ORIGINAL"
	StatementTypeResponse = "RESPONSE"
)

type Statement struct {
	ID             string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Content        string         `gorm:"type:text;not null" json:"content"`
	Summary        string         `gorm:"type:text" json:"summary"`
	Context        string         `gorm:"type:text" json:"context"`
	StatementDate  time.Time      `gorm:"not null;index:idx_statement_date" json:"statement_date"`
	StatementType  string         `gorm:"type:varchar(10);not null;default:ORIGINAL;index:idx_statement_type" json:"statement_type"`
	RespondsToID   *string        `gorm:"type:varchar(36);index:idx_responds_to" json:"responds_to_id"`
	PersonID       *string        `gorm:"type:varchar(36);index:idx_person_id" json:"person_id"`
	OrganizationID *string        `gorm:"type:varchar(36);index:idx_organization_id" json:"organization_id"`
	CaseID         *string        `gorm:"type:varchar(36);index:idx_case_id" json:"case_id"`
	ViewCount      int64          `gorm:"default:0" json:"view_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Person       *Person       `gorm:"foreignKey:PersonID" json:"person,omitempty"`
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Case         *Case         `gorm:"foreignKey:CaseID" json:"case,omitempty"`
	RespondsTo   *Statement    `gorm:"foreignKey:RespondsToID" json:"responds_to,omitempty"`

	Responses            []Statement    `gorm:"foreignKey:RespondsToID" json:"responses,omitempty"`
	Sources              []Source       `gorm:"foreignKey:StatementID" json:"sources,omitempty"`
	RepercussionsAbout   []Repercussion `gorm:"foreignKey:StatementAboutID" json:"repercussions_about,omitempty"`
	RepercussionsCaused  []Repercussion `gorm:"foreignKey:StatementCausedByID" json:"repercussions_caused,omitempty"`
}

func (Statement) TableName() string { return "statements" }

// SpeakerName returns the display name of whoever made the statement,
// preferring the person over the organization.
func (s *Statement) SpeakerName() string {
	if s.Person != nil {
		return s.Person.Name
	}
	if s.Organization != nil {
		return s.Organization.Name
	}
	return "Unknown"
}
