// internal/handlers/dashboard.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/drivelane/dealer-backend/internal/services"
	"github.com/drivelane/dealer-backend/internal/utils"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GET /dashboard
func (h *DashboardHandler) GetStats(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.GetStats(actor.TenantID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"stats": stats})
}
