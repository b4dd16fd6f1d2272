// internal/handlers/fi_request.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/drivelane/dealer-backend/internal/i18n"
	"github.com/drivelane/dealer-backend/internal/models"
	"github.com/drivelane/dealer-backend/internal/services"
	"github.com/drivelane/dealer-backend/internal/utils"
)

type FIRequestHandler struct {
	fiRequestService *services.FIRequestService
	metricsService   *services.MetricsService
}

func NewFIRequestHandler(fiRequestService *services.FIRequestService, metricsService *services.MetricsService) *FIRequestHandler {
	return &FIRequestHandler{
		fiRequestService: fiRequestService,
		metricsService:   metricsService,
	}
}

// POST /fi-requests
func (h *FIRequestHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req services.CreateFIRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	request, err := h.fiRequestService.Create(actor, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyFIRequestCreated),
		"fi_request": request,
	})
}

// GET /fi-requests
func (h *FIRequestHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	filters := services.FIRequestFilters{}
	if status := c.Query("status"); status != "" {
		s := models.RequestStatus(status)
		if !s.IsValid() {
			utils.BadRequestResponse(c, "invalid status filter", status)
			return
		}
		filters.Status = &s
	}
	if clientID := c.Query("client_id"); clientID != "" {
		id, err := uuid.Parse(clientID)
		if err != nil {
			utils.BadRequestResponse(c, "invalid client_id filter", err.Error())
			return
		}
		filters.ClientID = &id
	}

	// Sellers only see their own requests; reviewers see the whole tenant.
	if !actor.Role.IsReviewer() {
		filters.CreatedBy = &actor.UserID
	} else if createdBy := c.Query("created_by"); createdBy != "" {
		id, err := uuid.Parse(createdBy)
		if err != nil {
			utils.BadRequestResponse(c, "invalid created_by filter", err.Error())
			return
		}
		filters.CreatedBy = &id
	}

	requests, err := h.fiRequestService.List(actor.TenantID, filters)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"fi_requests": requests,
		"total":       len(requests),
	})
}

// GET /fi-requests/:id
func (h *FIRequestHandler) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	request, err := h.fiRequestService.Get(actor, id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"fi_request": request})
}

// POST /fi-requests/:id/submit
func (h *FIRequestHandler) Submit(c *gin.Context) {
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
		SellerNotes string `json:"seller_notes,omitempty"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
			return
		}
	}

	request, err := h.fiRequestService.Submit(actor, id, req.SellerNotes)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyFIRequestSubmitted),
		"fi_request": request,
	})
}

// POST /fi-requests/:id/review
func (h *FIRequestHandler) Review(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.ReviewFIRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	request, err := h.fiRequestService.Review(actor, id, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyFIRequestReviewed),
		"fi_request": request,
	})
}

// GET /fi-requests/metrics
func (h *FIRequestHandler) Metrics(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var start, end time.Time
	if v := c.Query("start_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			utils.BadRequestResponse(c, "invalid start_date", err.Error())
			return
		}
		start = t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			utils.BadRequestResponse(c, "invalid end_date", err.Error())
			return
		}
		end = t
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		utils.BadRequestResponse(c, "end_date must not be before start_date", nil)
		return
	}

	metrics, err := h.metricsService.FIRequestMetrics(actor.TenantID, start, end)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"metrics": metrics})
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
