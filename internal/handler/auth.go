package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/miles-brown/The-Words-Record-sub005/internal/middleware"
	"github.com/miles-brown/The-Words-Record-sub005/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "validation failed: "+err.Error())
		return
	}

	user, token, expireAt, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	Success(c, gin.H{
		"token":     token,
		"expire_at": expireAt,
		"user":      user.Brief(),
	})
}

// GET /auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		Unauthorized(c, 40103, "not authenticated")
		return
	}
	Success(c, gin.H{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"role":          user.Role,
		"is_admin":      user.IsAdmin,
		"status":        user.Status,
		"last_login_at": user.LastLoginAt,
		"created_at":    user.CreatedAt,
	})
}

// POST /auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	token, expireAt, err := h.authService.RefreshToken(userID)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{
		"token":     token,
		"expire_at": expireAt,
	})
}
