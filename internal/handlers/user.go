// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/drivelane/dealer-backend/internal/i18n"
	"github.com/drivelane/dealer-backend/internal/models"
	"github.com/drivelane/dealer-backend/internal/services"
	"github.com/drivelane/dealer-backend/internal/utils"
)

// UserHandler covers staff management and tenant workflow settings.
// All routes here sit behind AdminRequired.
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// POST /staff
func (h *UserHandler) CreateStaff(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req services.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	user, err := h.userService.CreateStaff(actor.TenantID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"user": user})
}

// GET /staff
func (h *UserHandler) ListStaff(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListStaff(actor.TenantID, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(users, total, params))
}

// PUT /staff/:id/status
func (h *UserHandler) SetStaffStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.UserStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "status"), err.Error())
		return
	}

	user, err := h.userService.SetStatus(actor.TenantID, id, req.Status)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// PUT /settings/workflow
func (h *UserHandler) UpdateWorkflowSettings(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req services.UpdateWorkflowSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	tenant, err := h.userService.UpdateWorkflowSettings(actor.TenantID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"tenant": tenant})
}
