package model

import (
	"time"

	"gorm.io/gorm"
)

// Case status values.
const (
	CaseStatusDocumented = "DOCUMENTED"
	CaseStatusDeveloping = "DEVELOPING"
	CaseStatusClosed     = "CLOSED"
)

// Case visibility values.
const (
	VisibilityPublic  = "PUBLIC"
	VisibilityPrivate = "PRIVATE"
	VisibilityDraft   = "DRAFT"
)

// PromotedByCron marks promotions performed by the scheduled auto-promotion
// task rather than a human actor.
const PromotedByCron = "CRON_AUTOMATION"

type Case struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Slug        string         `gorm:"type:varchar(128);uniqueIndex:idx_slug;not null" json:"slug"`
	Title       string         `gorm:"type:varchar(256);not null" json:"title"`
	Summary     string         `gorm:"type:text" json:"summary"`
	Description string         `gorm:"type:text" json:"description"`
	CaseDate    time.Time      `gorm:"not null;index:idx_case_date" json:"case_date"`
	Status      string         `gorm:"type:varchar(20);not null;default:DOCUMENTED;index:idx_status" json:"status"`
	Visibility  string         `gorm:"type:varchar(10);not null;default:PUBLIC;index:idx_visibility" json:"visibility"`

	QualificationScore int  `gorm:"default:0" json:"qualification_score"`
	ResponseCount      int  `gorm:"default:0" json:"response_count"`
	MediaOutletCount   int  `gorm:"default:0" json:"media_outlet_count"`
	HasPublicReaction  bool `gorm:"default:false" json:"has_public_reaction"`
	HasRepercussion    bool `gorm:"default:false" json:"has_repercussion"`

	// IsRealIncident distinguishes full multi-statement cases from lone
	// statement pages that share the same table.
	IsRealIncident  bool `gorm:"default:false;index:idx_real_incident" json:"is_real_incident"`
	WasAutoImported bool `gorm:"default:false" json:"was_auto_imported"`

	PromotedAt             *time.Time `json:"promoted_at"`
	PromotedBy             string     `gorm:"type:varchar(128)" json:"promoted_by"`
	PromotionReason        string     `gorm:"type:text" json:"promotion_reason"`
	WasManuallyPromoted    bool       `gorm:"default:false" json:"was_manually_promoted"`
	OriginatingStatementID *string    `gorm:"type:varchar(36);index:idx_originating_statement" json:"originating_statement_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Statements    []Statement    `gorm:"foreignKey:CaseID" json:"statements,omitempty"`
	People        []Person       `gorm:"many2many:case_people" json:"people,omitempty"`
	Organizations []Organization `gorm:"many2many:case_organizations" json:"organizations,omitempty"`
}

func (Case) TableName() string { return "cases" }
