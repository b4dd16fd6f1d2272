// internal/models/tenant.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is one dealership's isolated partition of the platform.
type Tenant struct {
	BaseModel
	Name      string `json:"name" gorm:"size:255;not null"`
	Slug      string `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	Email     string `json:"email" gorm:"size:255"`
	Phone     string `json:"phone,omitempty" gorm:"size:20"`
	Address   string `json:"address,omitempty" gorm:"type:text"`
	LogoURL   string `json:"logo_url,omitempty" gorm:"size:512"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	Settings  JSONB  `json:"settings" gorm:"type:jsonb"`

	// FIManagerID, when set, is the single user notified about submitted
	// F&I requests. When unset, all active dealers are notified instead.
	FIManagerID *uuid.UUID `json:"fi_manager_id" gorm:"type:uuid"`

	// LockTerminalRequests rejects further transitions on approved or
	// rejected requests. Off by default so staff can correct mistakes.
	LockTerminalRequests bool `json:"lock_terminal_requests" gorm:"default:false"`

	// Billing
	StripeCustomerID     string             `json:"-" gorm:"size:255;index"`
	StripeSubscriptionID string             `json:"-" gorm:"size:255"`
	SubscriptionStatus   SubscriptionStatus `json:"subscription_status" gorm:"type:varchar(20);default:'trialing'"`
	TrialEndsAt          *time.Time         `json:"trial_ends_at"`

	// Relationships
	Users    []User    `json:"users,omitempty" gorm:"foreignKey:TenantID"`
	Clients  []Client  `json:"clients,omitempty" gorm:"foreignKey:TenantID"`
	Vehicles []Vehicle `json:"vehicles,omitempty" gorm:"foreignKey:TenantID"`
}
