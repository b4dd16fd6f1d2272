// internal/handlers/vehicle.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/drivelane/dealer-backend/internal/i18n"
	"github.com/drivelane/dealer-backend/internal/models"
	"github.com/drivelane/dealer-backend/internal/services"
	"github.com/drivelane/dealer-backend/internal/utils"
)

type VehicleHandler struct {
	vehicleService *services.VehicleService
	storageService *services.StorageService
}

func NewVehicleHandler(vehicleService *services.VehicleService, storageService *services.StorageService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		storageService: storageService,
	}
}

// POST /vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req services.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	vehicle, err := h.vehicleService.Create(actor.TenantID, actor.UserID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyVehicleCreated),
		"vehicle": vehicle,
	})
}

// GET /vehicles
func (h *VehicleHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	var status *models.VehicleStatus
	if v := c.Query("status"); v != "" {
		s := models.VehicleStatus(v)
		status = &s
	}

	vehicles, total, err := h.vehicleService.List(actor.TenantID, status, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(vehicles, total, params))
}

// GET /vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.Get(actor.TenantID, id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"vehicle": vehicle})
}

// PUT /vehicles/:id
func (h *VehicleHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	vehicle, err := h.vehicleService.Update(actor.TenantID, id, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyVehicleUpdated),
		"vehicle": vehicle,
	})
}

// DELETE /vehicles/:id
func (h *VehicleHandler) Delete(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.vehicleService.Delete(actor.TenantID, id); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyVehicleDeleted)})
}

// POST /vehicles/:id/photos
func (h *VehicleHandler) UploadPhoto(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		utils.BadRequestResponse(c, "photo file is required", err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(file, header, services.VehiclePhotoOptions(actor.TenantID))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	vehicle, err := h.vehicleService.AttachPhoto(actor.TenantID, id, result.URL)
	if err != nil {
		// The vehicle row was not updated; drop the orphaned object.
		if delErr := h.storageService.DeleteFile(result.Key); delErr != nil {
			logDeleteFailure(result.Key, delErr)
		}
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"vehicle": vehicle,
		"upload":  result,
	})
}

// POST /vehicles/:id/generate-description
func (h *VehicleHandler) GenerateDescription(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.GenerateDescription(c.Request.Context(), actor.TenantID, id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"vehicle": vehicle})
}
