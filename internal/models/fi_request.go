// internal/models/fi_request.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/drivelane/dealer-backend/internal/apperrors"
)

// EmploymentInfo captures the applicant's income situation.
type EmploymentInfo struct {
	Employer      string           `json:"employer,omitempty"`
	Position      string           `json:"position,omitempty"`
	MonthlyIncome *decimal.Decimal `json:"monthly_income,omitempty"`
	YearsEmployed *float64         `json:"years_employed,omitempty"`
}

// CreditInfo captures the applicant's credit standing.
type CreditInfo struct {
	CreditRange   CreditRange `json:"credit_range"`
	CreditScore   *int        `json:"credit_score,omitempty"`
	HasBankruptcy bool        `json:"has_bankruptcy,omitempty"`
	HasRepo       bool        `json:"has_repo,omitempty"`
}

// PersonalInfo captures applicant identity fields. The workflow never
// interprets these beyond presence checks.
type PersonalInfo struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	DriverLicense string `json:"driver_license,omitempty"`
	SSNLast4      string `json:"ssn_last4,omitempty"`
}

// FIRequest is one finance & insurance application moving through the
// review workflow. Its status only ever changes through
// FIRequestService, which appends a history entry with every write.
type FIRequest struct {
	BaseModel
	TenantID uuid.UUID     `json:"tenant_id" gorm:"type:uuid;not null;index"`
	ClientID uuid.UUID     `json:"client_id" gorm:"type:uuid;not null;index"`
	Status   RequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`

	Employment   EmploymentInfo `json:"employment" gorm:"type:jsonb;serializer:json"`
	CreditInfo   CreditInfo     `json:"credit_info" gorm:"type:jsonb;serializer:json"`
	PersonalInfo PersonalInfo   `json:"personal_info" gorm:"type:jsonb;serializer:json"`
	SellerNotes  string         `json:"seller_notes,omitempty" gorm:"type:text"`

	// History is append-only. Entries are never mutated or deleted.
	History RequestHistory `json:"history" gorm:"type:jsonb"`

	CreatedBy   uuid.UUID  `json:"created_by" gorm:"type:uuid;not null;index"`
	SubmittedAt *time.Time `json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at"`

	// Relationships
	Tenant  *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Client  *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Creator *User   `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

// requestTransitions is the implemented portion of the workflow graph.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusDraft:       {RequestStatusSubmitted},
	RequestStatusSubmitted:   {RequestStatusUnderReview},
	RequestStatusUnderReview: {RequestStatusPreApproved, RequestStatusApproved, RequestStatusPendingInfo, RequestStatusRejected},
}

// CanTransitionTo reports whether the workflow allows moving from s to next.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ActionForStatus names the history action recorded for a transition into
// the given status.
func ActionForStatus(status RequestStatus) string {
	switch status {
	case RequestStatusSubmitted:
		return "submitted"
	case RequestStatusUnderReview:
		return "review_started"
	case RequestStatusPreApproved:
		return "pre_approved"
	case RequestStatusApproved:
		return "approved"
	case RequestStatusPendingInfo:
		return "info_requested"
	case RequestStatusRejected:
		return "rejected"
	default:
		return string(status)
	}
}

// IsReviewTarget reports whether a reviewer may move a request into this
// status. Draft and submitted belong to the seller's side of the
// workflow and are never set through review.
func (s RequestStatus) IsReviewTarget() bool {
	switch s {
	case RequestStatusUnderReview, RequestStatusPreApproved, RequestStatusApproved,
		RequestStatusPendingInfo, RequestStatusRejected:
		return true
	}
	return false
}

// IsReviewer reports whether the role may move requests through review.
func (r UserRole) IsReviewer() bool {
	return r == UserRoleFIManager || r == UserRoleDealer || r == UserRoleAdmin
}

// ApplyTransition moves the request to next in memory: it validates the
// workflow edge, appends exactly one history entry, and stamps
// SubmittedAt/ReviewedAt on the first entry into submitted or a terminal
// state. Persistence (and the conditional write guarding against a
// concurrent transition) is FIRequestService's job.
func (f *FIRequest) ApplyTransition(next RequestStatus, performedBy uuid.UUID, notes string, now time.Time) (*RequestHistoryEntry, error) {
	if !f.Status.CanTransitionTo(next) {
		return nil, &apperrors.InvalidTransitionError{
			Current:   string(f.Status),
			Requested: string(next),
		}
	}

	entry := RequestHistoryEntry{
		Action:         ActionForStatus(next),
		PerformedBy:    performedBy,
		Timestamp:      now,
		PreviousStatus: f.Status,
		NewStatus:      next,
		Notes:          notes,
	}

	f.History = append(f.History, entry)
	f.Status = next
	f.UpdatedAt = now

	if next == RequestStatusSubmitted && f.SubmittedAt == nil {
		f.SubmittedAt = &now
	}
	if next.IsTerminal() && f.ReviewedAt == nil {
		f.ReviewedAt = &now
	}

	return &f.History[len(f.History)-1], nil
}
