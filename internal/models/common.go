// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleDealer    UserRole = "dealer"
	UserRoleFIManager UserRole = "fi_manager"
	UserRoleSeller    UserRole = "seller"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusInactive  UserStatus = "inactive"
)

type RequestStatus string

const (
	RequestStatusDraft       RequestStatus = "draft"
	RequestStatusSubmitted   RequestStatus = "submitted"
	RequestStatusUnderReview RequestStatus = "under_review"
	RequestStatusPreApproved RequestStatus = "pre_approved"
	RequestStatusApproved    RequestStatus = "approved"
	RequestStatusPendingInfo RequestStatus = "pending_info"
	RequestStatusRejected    RequestStatus = "rejected"
)

// AllRequestStatuses lists every lifecycle state, in workflow order.
var AllRequestStatuses = []RequestStatus{
	RequestStatusDraft,
	RequestStatusSubmitted,
	RequestStatusUnderReview,
	RequestStatusPreApproved,
	RequestStatusApproved,
	RequestStatusPendingInfo,
	RequestStatusRejected,
}

func (s RequestStatus) IsValid() bool {
	for _, known := range AllRequestStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status ends the review workflow.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

type CreditRange string

const (
	CreditRangeExcellent CreditRange = "excellent"
	CreditRangeGood      CreditRange = "good"
	CreditRangeFair      CreditRange = "fair"
	CreditRangePoor      CreditRange = "poor"
	CreditRangeNoCredit  CreditRange = "no_credit"
)

var AllCreditRanges = []CreditRange{
	CreditRangeExcellent,
	CreditRangeGood,
	CreditRangeFair,
	CreditRangePoor,
	CreditRangeNoCredit,
}

func (c CreditRange) IsValid() bool {
	for _, known := range AllCreditRanges {
		if c == known {
			return true
		}
	}
	return false
}

type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "available"
	VehicleStatusReserved  VehicleStatus = "reserved"
	VehicleStatusSold      VehicleStatus = "sold"
	VehicleStatusHidden    VehicleStatus = "hidden"
)

type NotificationChannel string

const (
	NotificationChannelInApp NotificationChannel = "in_app"
	NotificationChannelEmail NotificationChannel = "email"
	NotificationChannelSMS   NotificationChannel = "sms"
)

type SubscriptionStatus string

const (
	SubscriptionStatusTrialing SubscriptionStatus = "trialing"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// RequestHistoryEntry is one element of an FIRequest's append-only history.
type RequestHistoryEntry struct {
	Action         string        `json:"action"`
	PerformedBy    uuid.UUID     `json:"performed_by"`
	Timestamp      time.Time     `json:"timestamp"`
	PreviousStatus RequestStatus `json:"previous_status,omitempty"`
	NewStatus      RequestStatus `json:"new_status"`
	Notes          string        `json:"notes,omitempty"`
}

// RequestHistory stores history entries as a JSONB array.
type RequestHistory []RequestHistoryEntry

func (h RequestHistory) Value() (driver.Value, error) {
	if h == nil {
		return json.Marshal(RequestHistory{})
	}
	return json.Marshal(h)
}

func (h *RequestHistory) Scan(value interface{}) error {
	if value == nil {
		*h = RequestHistory{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, h)
}
