package model

import (
	"time"

	"gorm.io/gorm"
)

// Repercussion type values.
const (
	RepercussionJobLoss     = "JOB_LOSS"
	RepercussionLegalAction = "LEGAL_ACTION"
	RepercussionSuspension  = "SUSPENSION"
	RepercussionApology     = "APOLOGY"
	RepercussionOther       = "OTHER"
)

// Repercussion is a tangible consequence linked to a statement. A repercussion
// is either about a statement (the statement drew the consequence) or caused
// by one (the statement announced or triggered it).
type Repercussion struct {
	ID                  string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	StatementAboutID    *string        `gorm:"type:varchar(36);index:idx_repercussion_about" json:"statement_about_id"`
	StatementCausedByID *string        `gorm:"type:varchar(36);index:idx_repercussion_caused" json:"statement_caused_by_id"`
	Type                string         `gorm:"type:varchar(20);not null;default:OTHER" json:"type"`
	Title               string         `gorm:"type:varchar(256);not null" json:"title"`
	Description         string         `gorm:"type:text" json:"description"`
	OccurredAt          *time.Time     `json:"occurred_at"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Repercussion) TableName() string { return "repercussions" }
