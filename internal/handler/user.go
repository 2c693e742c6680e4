package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/miles-brown/The-Words-Record-sub005/internal/service"
)

type UserHandler struct {
	authService *service.AuthService
}

func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// POST /admin/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Name     string `json:"name" binding:"required,max=64"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "validation failed: "+err.Error())
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Created(c, user.Brief())
}

// GET /admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, pageSize := parsePage(c)
	keyword := c.Query("keyword")
	role := c.Query("role")

	var status *int
	if s := c.Query("status"); s != "" {
		v, _ := strconv.Atoi(s)
		status = &v
	}

	users, total, err := h.authService.ListUsers(keyword, role, status, page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{
			"id":            u.ID,
			"name":          u.Name,
			"email":         u.Email,
			"role":          u.Role,
			"is_admin":      u.IsAdmin,
			"status":        u.Status,
			"last_login_at": u.LastLoginAt,
			"created_at":    u.CreatedAt,
		})
	}
	SuccessPaged(c, list, total, page, pageSize)
}

// PUT /admin/users/:id/role
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	id := parseID(c.Param("id"))
	var req struct {
		Role string `json:"role" binding:"required,oneof=admin editor viewer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "validation failed: "+err.Error())
		return
	}

	user, err := h.authService.UpdateUserRole(id, req.Role)
	if err != nil {
		NotFound(c, 40401, "user not found")
		return
	}
	Success(c, gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"role":       user.Role,
		"is_admin":   user.IsAdmin,
		"updated_at": user.UpdatedAt,
	})
}

// PUT /admin/users/:id/status
func (h *UserHandler) UpdateUserStatus(c *gin.Context) {
	id := parseID(c.Param("id"))
	var req struct {
		Status *int `json:"status" binding:"required,oneof=0 1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "validation failed: "+err.Error())
		return
	}

	user, err := h.authService.UpdateUserStatus(id, *req.Status)
	if err != nil {
		NotFound(c, 40401, "user not found")
		return
	}
	Success(c, gin.H{
		"id":     user.ID,
		"name":   user.Name,
		"status": user.Status,
	})
}

// GET /admin/operation-logs
func (h *UserHandler) GetOperationLogs(c *gin.Context) {
	page, pageSize := parsePage(c)
	action := c.Query("action")
	resourceType := c.Query("resource_type")

	var userID *uint
	if s := c.Query("user_id"); s != "" {
		v := parseID(s)
		userID = &v
	}
	var startTime, endTime *time.Time
	if s := c.Query("start_time"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			startTime = &t
		}
	}
	if s := c.Query("end_time"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			endTime = &t
		}
	}

	logs, total, err := h.authService.GetOperationLogs(userID, action, resourceType, startTime, endTime, page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	list := make([]gin.H, 0, len(logs))
	for _, l := range logs {
		item := gin.H{
			"id":            l.ID,
			"actor":         l.Actor,
			"action":        l.Action,
			"resource_type": l.ResourceType,
			"resource_id":   l.ResourceID,
			"detail":        l.Detail,
			"ip":            l.IP,
			"created_at":    l.CreatedAt,
		}
		if l.User != nil {
			item["user"] = l.User.Brief()
		}
		list = append(list, item)
	}
	SuccessPaged(c, list, total, page, pageSize)
}
