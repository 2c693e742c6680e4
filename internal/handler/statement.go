package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
	"github.com/miles-brown/The-Words-Record-sub005/internal/service"
)

type StatementHandler struct {
	stmtService *service.StatementService
	viewService *service.ViewService
}

func NewStatementHandler(stmtService *service.StatementService, viewService *service.ViewService) *StatementHandler {
	return &StatementHandler{stmtService: stmtService, viewService: viewService}
}

// POST /statements
func (h *StatementHandler) Create(c *gin.Context) {
	var req struct {
		Content        string    `json:"content" binding:"required"`
		Summary        string    `json:"summary"`
		Context        string    `json:"context"`
		StatementDate  time.Time `json:"statement_date" binding:"required"`
		StatementType  string    `json:"statement_type"`
		RespondsToID   *string   `json:"responds_to_id"`
		PersonID       *string   `json:"person_id"`
		OrganizationID *string   `json:"organization_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "validation failed: "+err.Error())
		return
	}

	stmt, err := h.stmtService.Create(service.CreateStatementInput{
		Content:        req.Content,
		Summary:        req.Summary,
		Context:        req.Context,
		StatementDate:  req.StatementDate,
		StatementType:  req.StatementType,
		RespondsToID:   req.RespondsToID,
		PersonID:       req.PersonID,
		OrganizationID: req.OrganizationID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Created(c, stmt)
}

// GET /statements
func (h *StatementHandler) List(c *gin.Context) {
	page, pageSize := parsePage(c)
	statementType := c.Query("type")
	personID := c.Query("person_id")
	caseID := c.Query("case_id")
	keyword := c.Query("keyword")

	stmts, total, err := h.stmtService.List(statementType, personID, caseID, keyword, page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	list := make([]gin.H, 0, len(stmts))
	for _, s := range stmts {
		item := gin.H{
			"id":             s.ID,
			"content":        s.Content,
			"summary":        s.Summary,
			"statement_date": s.StatementDate,
			"statement_type": s.StatementType,
			"case_id":        s.CaseID,
			"view_count":     s.ViewCount,
		}
		if s.Person != nil {
			item["person"] = gin.H{"id": s.Person.ID, "name": s.Person.Name, "slug": s.Person.Slug}
		}
		if s.Organization != nil {
			item["organization"] = gin.H{"id": s.Organization.ID, "name": s.Organization.Name, "slug": s.Organization.Slug}
		}
		list = append(list, item)
	}
	SuccessPaged(c, list, total, page, pageSize)
}

// GET /statements/:id
func (h *StatementHandler) GetDetail(c *gin.Context) {
	stmt, err := h.stmtService.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, stmt)
}

// GET /statements/:id/responses
func (h *StatementHandler) ListResponses(c *gin.Context) {
	responses, err := h.stmtService.ListResponses(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, gin.H{"list": responses, "total": len(responses)})
}

// POST /statements/:id/view
func (h *StatementHandler) RecordView(c *gin.Context) {
	if err := h.viewService.RecordView(c.Request.Context(), c.Param("id")); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

// PUT /statements/:id
func (h *StatementHandler) Update(c *gin.Context) {
	var req struct {
		Content *string    `json:"content"`
		Summary *string    `json:"summary"`
		Context *string    `json:"context"`
		Date    *time.Time `json:"statement_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "validation failed: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Summary != nil {
		updates["summary"] = *req.Summary
	}
	if req.Context != nil {
		updates["context"] = *req.Context
	}
	if req.Date != nil {
		updates["statement_date"] = *req.Date
	}
	if len(updates) == 0 {
		BadRequest(c, 40001, "nothing to update")
		return
	}

	stmt, err := h.stmtService.Update(c.Param("id"), updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, stmt)
}

// DELETE /statements/:id
func (h *StatementHandler) Delete(c *gin.Context) {
	if err := h.stmtService.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, nil)
}

// POST /statements/:id/sources
func (h *StatementHandler) AddSource(c *gin.Context) {
	var req struct {
		Publication string     `json:"publication"`
		Author      string     `json:"author"`
		URL         string     `json:"url" binding:"required,url"`
		PublishedAt *time.Time `json:"published_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "validation failed: "+err.Error())
		return
	}

	src, err := h.stmtService.AddSource(c.Param("id"), &model.Source{
		Publication: req.Publication,
		Author:      req.Author,
		URL:         req.URL,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Created(c, src)
}

// POST /repercussions
func (h *StatementHandler) AddRepercussion(c *gin.Context) {
	var req struct {
		StatementAboutID    *string    `json:"statement_about_id"`
		StatementCausedByID *string    `json:"statement_caused_by_id"`
		Type                string     `json:"type"`
		Title               string     `json:"title" binding:"required,max=256"`
		Description         string     `json:"description"`
		OccurredAt          *time.Time `json:"occurred_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "validation failed: "+err.Error())
		return
	}

	rep, err := h.stmtService.AddRepercussion(&model.Repercussion{
		StatementAboutID:    req.StatementAboutID,
		StatementCausedByID: req.StatementCausedByID,
		Type:                req.Type,
		Title:               req.Title,
		Description:         req.Description,
		OccurredAt:          req.OccurredAt,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Created(c, rep)
}
