package router

import (
	"github.com/gin-gonic/gin"
	"github.com/miles-brown/The-Words-Record-sub005/internal/handler"
	"github.com/miles-brown/The-Words-Record-sub005/internal/middleware"
	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
	"gorm.io/gorm"
)

type Deps struct {
	DB               *gorm.DB
	JWTSecret        string
	CronSecret       string
	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	StatementHandler *handler.StatementHandler
	CaseHandler      *handler.CaseHandler
	PromotionHandler *handler.PromotionHandler
	CronHandler      *handler.CronHandler
	DashboardHandler *handler.DashboardHandler
	SettingHandler   *handler.SettingHandler
}

func Setup(r *gin.Engine, deps Deps) {
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api/v1")

	// Public routes (no auth)
	api.POST("/auth/login", deps.AuthHandler.Login)

	api.GET("/cases", deps.CaseHandler.List(false))
	api.GET("/cases/:slug", deps.CaseHandler.GetBySlug)

	api.GET("/statements", deps.StatementHandler.List)
	api.GET("/statements/:id", deps.StatementHandler.GetDetail)
	api.GET("/statements/:id/responses", deps.StatementHandler.ListResponses)
	api.POST("/statements/:id/view", deps.StatementHandler.RecordView)

	// Scheduled tasks (shared-secret bearer auth)
	api.GET("/cron", middleware.CronAuth(deps.CronSecret), deps.CronHandler.Run)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.DB))
	{
		authed.GET("/auth/me", deps.AuthHandler.GetMe)
		authed.POST("/auth/refresh", deps.AuthHandler.RefreshToken)

		// Content editing
		editors := authed.Group("")
		editors.Use(middleware.RequireRole(model.RoleEditor))
		{
			editors.POST("/statements", deps.StatementHandler.Create)
			editors.PUT("/statements/:id", deps.StatementHandler.Update)
			editors.DELETE("/statements/:id", deps.StatementHandler.Delete)
			editors.POST("/statements/:id/sources", deps.StatementHandler.AddSource)
			editors.POST("/repercussions", deps.StatementHandler.AddRepercussion)
		}

		// Promotion surface
		promote := authed.Group("/cases/promote")
		promote.Use(middleware.RequireAdmin())
		{
			promote.GET("", deps.PromotionHandler.ListQualified)
			promote.POST("", deps.PromotionHandler.Promote)
		}

		// Dashboard
		authed.GET("/dashboard/stats", middleware.RequireRole(model.RoleEditor), deps.DashboardHandler.GetStats)

		// Notification settings
		authed.GET("/settings/notifications", deps.SettingHandler.GetNotificationSettings)
		authed.PUT("/settings/notifications", deps.SettingHandler.UpdateNotificationSettings)

		// Admin routes
		admin := authed.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/users", deps.UserHandler.CreateUser)
			admin.GET("/users", deps.UserHandler.ListUsers)
			admin.PUT("/users/:id/role", deps.UserHandler.UpdateUserRole)
			admin.PUT("/users/:id/status", deps.UserHandler.UpdateUserStatus)
			admin.GET("/operation-logs", deps.UserHandler.GetOperationLogs)

			admin.GET("/cases", deps.CaseHandler.List(true))
			admin.PUT("/cases/:id", deps.CaseHandler.Update)
		}
	}
}
