// internal/handlers/client.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/drivelane/dealer-backend/internal/i18n"
	"github.com/drivelane/dealer-backend/internal/services"
	"github.com/drivelane/dealer-backend/internal/utils"
)

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// POST /clients
func (h *ClientHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req services.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	client, err := h.clientService.Create(actor.TenantID, actor.UserID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyClientCreated),
		"client":  client,
	})
}

// GET /clients
func (h *ClientHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	clients, total, err := h.clientService.List(actor.TenantID, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(clients, total, params))
}

// GET /clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.Get(actor.TenantID, id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"client": client})
}

// PUT /clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	client, err := h.clientService.Update(actor.TenantID, id, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyClientUpdated),
		"client":  client,
	})
}

// DELETE /clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.Delete(actor.TenantID, id); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyClientDeleted)})
}
