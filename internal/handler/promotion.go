package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/miles-brown/The-Words-Record-sub005/internal/middleware"
	"github.com/miles-brown/The-Words-Record-sub005/internal/service"
)

type PromotionHandler struct {
	qualService *service.QualificationService
	promService *service.PromotionService
}

func NewPromotionHandler(qualService *service.QualificationService, promService *service.PromotionService) *PromotionHandler {
	return &PromotionHandler{qualService: qualService, promService: promService}
}

// GET /cases/promote?limit=n
//
// Lists statements that currently qualify for promotion, best first.
func (h *PromotionHandler) ListQualified(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	qualified, err := h.qualService.ListQualifiedStatements(limit)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	list := make([]gin.H, 0, len(qualified))
	for _, q := range qualified {
		stmt := gin.H{
			"id":             q.Statement.ID,
			"content":        truncateContent(q.Statement.Content, 200),
			"statement_date": q.Statement.StatementDate,
		}
		if q.Statement.Person != nil {
			stmt["person"] = gin.H{"id": q.Statement.Person.ID, "name": q.Statement.Person.Name}
		}
		if q.Statement.Organization != nil {
			stmt["organization"] = gin.H{"id": q.Statement.Organization.ID, "name": q.Statement.Organization.Name}
		}
		list = append(list, gin.H{
			"statement": stmt,
			"criteria":  q.Criteria,
		})
	}
	Success(c, gin.H{"qualified": list})
}

// POST /cases/promote
func (h *PromotionHandler) Promote(c *gin.Context) {
	var req struct {
		StatementID      string `json:"statement_id" binding:"required"`
		PromotedBy       string `json:"promoted_by"`
		PromotionReason  string `json:"promotion_reason"`
		IsManualOverride bool   `json:"is_manual_override"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "validation failed: "+err.Error())
		return
	}

	promotedBy := req.PromotedBy
	if promotedBy == "" {
		if user := middleware.GetCurrentUser(c); user != nil {
			promotedBy = user.Email
		}
	}
	if promotedBy == "" {
		BadRequest(c, 40001, "promoted_by is required")
		return
	}

	newCase, err := h.promService.PromoteStatementToCase(req.StatementID, promotedBy, req.PromotionReason, req.IsManualOverride)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Created(c, gin.H{"case": newCase})
}

// truncateContent cuts the preview to at most n runes; slicing bytes could
// split a multibyte character and emit invalid UTF-8.
func truncateContent(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
