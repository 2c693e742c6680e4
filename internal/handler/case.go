package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/miles-brown/The-Words-Record-sub005/internal/service"
)

type CaseHandler struct {
	caseService *service.CaseService
}

func NewCaseHandler(caseService *service.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

// GET /cases          (public: only PUBLIC visibility)
// GET /admin/cases    (admin: everything)
func (h *CaseHandler) List(includeHidden bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := parsePage(c)
		status := c.Query("status")
		realOnly := c.DefaultQuery("real_only", "false") == "true"

		cases, total, err := h.caseService.List(status, realOnly, includeHidden, page, pageSize)
		if err != nil {
			InternalError(c, err.Error())
			return
		}

		list := make([]gin.H, 0, len(cases))
		for _, cs := range cases {
			list = append(list, gin.H{
				"id":                  cs.ID,
				"slug":                cs.Slug,
				"title":               cs.Title,
				"summary":             cs.Summary,
				"case_date":           cs.CaseDate,
				"status":              cs.Status,
				"visibility":          cs.Visibility,
				"is_real_incident":    cs.IsRealIncident,
				"qualification_score": cs.QualificationScore,
				"response_count":      cs.ResponseCount,
			})
		}
		SuccessPaged(c, list, total, page, pageSize)
	}
}

// GET /cases/:slug
func (h *CaseHandler) GetBySlug(c *gin.Context) {
	cs, err := h.caseService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, cs)
}

// PUT /admin/cases/:id
func (h *CaseHandler) Update(c *gin.Context) {
	var req struct {
		Title      *string `json:"title"`
		Summary    *string `json:"summary"`
		Status     *string `json:"status"`
		Visibility *string `json:"visibility"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "validation failed: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Summary != nil {
		updates["summary"] = *req.Summary
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Visibility != nil {
		updates["visibility"] = *req.Visibility
	}
	if len(updates) == 0 {
		BadRequest(c, 40001, "nothing to update")
		return
	}

	cs, err := h.caseService.Update(c.Param("id"), updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, cs)
}
