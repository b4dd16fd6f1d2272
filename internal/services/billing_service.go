// internal/services/billing_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	checkoutsession "github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/customer"
	"github.com/stripe/stripe-go/v74/subscription"
	"gorm.io/gorm"

	"github.com/drivelane/dealer-backend/internal/apperrors"
	"github.com/drivelane/dealer-backend/internal/config"
	"github.com/drivelane/dealer-backend/internal/models"
)

// BillingService keeps a tenant's subscription in sync with Stripe.
// Stripe owns the actual payment state machine; this layer only creates
// checkout sessions and mirrors the subscription status locally.
type BillingService struct {
	db  *gorm.DB
	cfg *config.Config
}

type CheckoutSessionResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

func NewBillingService(db *gorm.DB, cfg *config.Config) *BillingService {
	// Initialize Stripe
	stripe.Key = cfg.Billing.StripeSecretKey

	return &BillingService{
		db:  db,
		cfg: cfg,
	}
}

func (s *BillingService) configured() bool {
	return s.cfg.Billing.StripeSecretKey != "" && s.cfg.Billing.StripeMonthlyPriceID != ""
}

// CreateCheckoutSession starts a subscription checkout for the tenant,
// creating the Stripe customer on first use.
func (s *BillingService) CreateCheckoutSession(tenantID uuid.UUID) (*CheckoutSessionResponse, error) {
	if !s.configured() {
		return nil, fmt.Errorf("%w: billing is not configured", apperrors.ErrValidation)
	}

	tenant, err := s.getTenant(tenantID)
	if err != nil {
		return nil, err
	}

	if tenant.StripeCustomerID == "" {
		params := &stripe.CustomerParams{
			Name:  stripe.String(tenant.Name),
			Email: stripe.String(tenant.Email),
		}
		params.AddMetadata("tenant_id", tenant.ID.String())

		cust, err := customer.New(params)
		if err != nil {
			return nil, fmt.Errorf("failed to create Stripe customer: %w", err)
		}

		tenant.StripeCustomerID = cust.ID
		if err := s.db.Save(tenant).Error; err != nil {
			return nil, fmt.Errorf("failed to store Stripe customer id: %w", err)
		}
	}

	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(tenant.StripeCustomerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.cfg.Billing.StripeMonthlyPriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.cfg.Frontend.BaseURL + "/billing/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.cfg.Frontend.BaseURL + "/billing/canceled"),
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &CheckoutSessionResponse{
		SessionID:   sess.ID,
		CheckoutURL: sess.URL,
	}, nil
}

// SyncSubscription refreshes the tenant's mirrored subscription status
// from Stripe.
func (s *BillingService) SyncSubscription(tenantID uuid.UUID) (*models.Tenant, error) {
	if !s.configured() {
		return nil, fmt.Errorf("%w: billing is not configured", apperrors.ErrValidation)
	}

	tenant, err := s.getTenant(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.StripeCustomerID == "" {
		return tenant, nil
	}

	iter := subscription.List(&stripe.SubscriptionListParams{
		Customer: stripe.String(tenant.StripeCustomerID),
	})

	var latest *stripe.Subscription
	for iter.Next() {
		sub := iter.Subscription()
		if latest == nil || sub.Created > latest.Created {
			latest = sub
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	if latest == nil {
		return tenant, nil
	}

	tenant.StripeSubscriptionID = latest.ID
	tenant.SubscriptionStatus = mapSubscriptionStatus(latest.Status)
	if err := s.db.Save(tenant).Error; err != nil {
		return nil, fmt.Errorf("failed to store subscription status: %w", err)
	}

	return tenant, nil
}

func (s *BillingService) getTenant(tenantID uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "tenant"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &tenant, nil
}

func mapSubscriptionStatus(status stripe.SubscriptionStatus) models.SubscriptionStatus {
	switch status {
	case stripe.SubscriptionStatusActive:
		return models.SubscriptionStatusActive
	case stripe.SubscriptionStatusTrialing:
		return models.SubscriptionStatusTrialing
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid:
		return models.SubscriptionStatusPastDue
	default:
		return models.SubscriptionStatusCanceled
	}
}
