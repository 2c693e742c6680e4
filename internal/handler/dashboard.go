package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// GET /dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	var totalStatements int64
	h.db.Model(&model.Statement{}).Count(&totalStatements)

	var totalCases int64
	h.db.Model(&model.Case{}).Count(&totalCases)

	var realIncidents int64
	h.db.Model(&model.Case{}).Where("is_real_incident = ?", true).Count(&realIncidents)

	var unpromoted int64
	h.db.Model(&model.Statement{}).
		Where("statement_type = ? AND case_id IS NULL", model.StatementTypeOriginal).
		Count(&unpromoted)

	var repercussions int64
	h.db.Model(&model.Repercussion{}).Count(&repercussions)

	// Recent promotions (last 10)
	var recentCases []model.Case
	h.db.Where("promoted_at IS NOT NULL").
		Order("promoted_at desc").Limit(10).Find(&recentCases)

	recent := make([]gin.H, 0, len(recentCases))
	for _, cs := range recentCases {
		recent = append(recent, gin.H{
			"id":                  cs.ID,
			"slug":                cs.Slug,
			"title":               cs.Title,
			"promoted_at":         cs.PromotedAt,
			"promoted_by":         cs.PromotedBy,
			"qualification_score": cs.QualificationScore,
			"was_manual":          cs.WasManuallyPromoted,
		})
	}

	Success(c, gin.H{
		"total_statements":       totalStatements,
		"total_cases":            totalCases,
		"real_incidents":         realIncidents,
		"unpromoted_statements":  unpromoted,
		"total_repercussions":    repercussions,
		"recent_promotions":      recent,
	})
}
