// internal/handlers/billing.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/drivelane/dealer-backend/internal/i18n"
	"github.com/drivelane/dealer-backend/internal/services"
	"github.com/drivelane/dealer-backend/internal/utils"
)

type BillingHandler struct {
	billingService *services.BillingService
}

func NewBillingHandler(billingService *services.BillingService) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
	}
}

// POST /billing/checkout
func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	session, err := h.billingService.CreateCheckoutSession(actor.TenantID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyBillingCheckoutCreated),
		"checkout": session,
	})
}

// POST /billing/sync
func (h *BillingHandler) SyncSubscription(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	tenant, err := h.billingService.SyncSubscription(actor.TenantID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"tenant": tenant})
}
