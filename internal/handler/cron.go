package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/miles-brown/The-Words-Record-sub005/internal/service"
)

// CronHandler dispatches scheduled tasks. The route is guarded by the shared
// bearer secret (middleware.CronAuth); the scheduler lives outside this
// process and just hits the endpoint.
type CronHandler struct {
	autoPromote *service.AutoPromotionService
	viewService *service.ViewService
}

func NewCronHandler(autoPromote *service.AutoPromotionService, viewService *service.ViewService) *CronHandler {
	return &CronHandler{autoPromote: autoPromote, viewService: viewService}
}

// GET /cron?task=<name>
func (h *CronHandler) Run(c *gin.Context) {
	switch task := c.Query("task"); task {
	case "auto-promote":
		result, err := h.autoPromote.Run(c.Request.Context())
		if err != nil {
			InternalError(c, err.Error())
			return
		}
		Success(c, result)
	case "flush-views":
		flushed, err := h.viewService.FlushViews(c.Request.Context())
		if err != nil {
			InternalError(c, err.Error())
			return
		}
		Success(c, gin.H{"flushed": flushed})
	default:
		BadRequest(c, 40001, "unknown task: "+task)
	}
}
