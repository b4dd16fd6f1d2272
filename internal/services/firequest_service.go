// internal/services/firequest_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/drivelane/dealer-backend/internal/apperrors"
	"github.com/drivelane/dealer-backend/internal/models"
	"github.com/drivelane/dealer-backend/internal/utils"
)

// FIRequestService owns the F&I request lifecycle. All status changes go
// through it so that every change appends exactly one history entry in
// the same write that updates the status.
type FIRequestService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type CreateFIRequestRequest struct {
	ClientID     uuid.UUID             `json:"client_id" validate:"required"`
	Employment   models.EmploymentInfo `json:"employment"`
	CreditInfo   models.CreditInfo     `json:"credit_info"`
	PersonalInfo models.PersonalInfo   `json:"personal_info"`
	SellerNotes  string                `json:"seller_notes,omitempty"`
	Submit       bool                  `json:"submit,omitempty"`
}

type ReviewFIRequestRequest struct {
	Status models.RequestStatus `json:"status" validate:"required"`
	Notes  string               `json:"notes,omitempty"`
}

type FIRequestFilters struct {
	Status    *models.RequestStatus
	ClientID  *uuid.UUID
	CreatedBy *uuid.UUID
}

// Actor is the authenticated identity acting on a request.
type Actor struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Role     models.UserRole
}

func NewFIRequestService(db *gorm.DB, notificationService *NotificationService) *FIRequestService {
	return &FIRequestService{
		db:                  db,
		notificationService: notificationService,
	}
}

// Create opens a draft request. Sellers only; reviewers act on requests
// through Review, never by opening them.
func (s *FIRequestService) Create(actor Actor, req *CreateFIRequestRequest) (*models.FIRequest, error) {
	if actor.Role != models.UserRoleSeller {
		return nil, &apperrors.ForbiddenError{Reason: "only sellers may create finance requests"}
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if req.PersonalInfo.FirstName == "" || req.PersonalInfo.LastName == "" {
		return nil, fmt.Errorf("%w: applicant first and last name are required", apperrors.ErrValidation)
	}
	if !req.CreditInfo.CreditRange.IsValid() {
		return nil, fmt.Errorf("%w: unknown credit range %q", apperrors.ErrValidation, req.CreditInfo.CreditRange)
	}

	// The applicant must be a client of the same tenant.
	var client models.Client
	if err := s.db.Where("id = ? AND tenant_id = ?", req.ClientID, actor.TenantID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "client"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	now := time.Now()
	request := &models.FIRequest{
		TenantID:     actor.TenantID,
		ClientID:     req.ClientID,
		Status:       models.RequestStatusDraft,
		Employment:   req.Employment,
		CreditInfo:   req.CreditInfo,
		PersonalInfo: req.PersonalInfo,
		SellerNotes:  req.SellerNotes,
		CreatedBy:    actor.UserID,
		History: models.RequestHistory{{
			Action:      "created",
			PerformedBy: actor.UserID,
			Timestamp:   now,
			NewStatus:   models.RequestStatusDraft,
		}},
	}

	if err := s.db.Create(request).Error; err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if req.Submit {
		return s.Submit(actor, request.ID, req.SellerNotes)
	}

	return request, nil
}

func (s *FIRequestService) Get(actor Actor, id uuid.UUID) (*models.FIRequest, error) {
	var request models.FIRequest
	if err := s.db.Where("id = ? AND tenant_id = ?", id, actor.TenantID).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "fi_request"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Sellers only see their own requests; reviewers see the tenant's.
	if !actor.Role.IsReviewer() && request.CreatedBy != actor.UserID {
		return nil, &apperrors.ForbiddenError{Reason: "you do not own this request"}
	}

	return &request, nil
}

// List returns the tenant's requests, newest first. When the ordered
// query fails (the store may lack the composite index backing
// filter+order), it falls back to an unordered fetch and sorts in memory.
func (s *FIRequestService) List(tenantID uuid.UUID, filters FIRequestFilters) ([]models.FIRequest, error) {
	base := s.db.Where("tenant_id = ?", tenantID)
	if filters.Status != nil {
		base = base.Where("status = ?", *filters.Status)
	}
	if filters.ClientID != nil {
		base = base.Where("client_id = ?", *filters.ClientID)
	}
	if filters.CreatedBy != nil {
		base = base.Where("created_by = ?", *filters.CreatedBy)
	}

	var requests []models.FIRequest
	err := base.Session(&gorm.Session{}).Order("created_at DESC").Find(&requests).Error
	if err == nil {
		return requests, nil
	}

	logrus.WithError(err).Warn("Ordered fi_request query failed, retrying unordered")
	if err := base.Session(&gorm.Session{}).Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}

// Submit moves a draft to submitted. Only the creator may submit. On
// success the notification fan-out runs in the background; its failure
// never affects the caller.
func (s *FIRequestService) Submit(actor Actor, id uuid.UUID, notes string) (*models.FIRequest, error) {
	request, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}

	if err := ensureCreator(request, actor); err != nil {
		return nil, err
	}

	if err := s.persistTransition(request, models.RequestStatusSubmitted, actor.UserID, notes); err != nil {
		return nil, err
	}

	go s.notificationService.FanOutSubmission(request)

	return request, nil
}

// ensureCreator enforces the creator-only submit rule. Get lets reviewer
// roles see any tenant request, so Submit checks ownership explicitly.
func ensureCreator(request *models.FIRequest, actor Actor) error {
	if request.CreatedBy != actor.UserID {
		return &apperrors.ForbiddenError{Reason: "only the creator may submit this request"}
	}
	return nil
}

// Review moves a request through the review workflow. Reviewer roles only.
func (s *FIRequestService) Review(actor Actor, id uuid.UUID, req *ReviewFIRequestRequest) (*models.FIRequest, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, req.Status)
	}
	if !req.Status.IsReviewTarget() {
		return nil, fmt.Errorf("%w: status %q cannot be set through review", apperrors.ErrValidation, req.Status)
	}
	if !actor.Role.IsReviewer() {
		return nil, &apperrors.ForbiddenError{Reason: "reviewer role required"}
	}

	request, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}

	if request.Status.IsTerminal() {
		var tenant models.Tenant
		if err := s.db.First(&tenant, actor.TenantID).Error; err != nil {
			return nil, fmt.Errorf("tenant lookup failed: %w", err)
		}
		if tenant.LockTerminalRequests {
			return nil, &apperrors.InvalidTransitionError{
				Current:   string(request.Status),
				Requested: string(req.Status),
			}
		}
	}

	if err := s.persistTransition(request, req.Status, actor.UserID, req.Notes); err != nil {
		return nil, err
	}

	return request, nil
}

// persistTransition applies the transition in memory, then writes status,
// history, and timestamps in a single conditional UPDATE guarded on the
// previous status. A concurrent transition makes the guard miss; the
// loser gets InvalidTransition with the fresh status instead of silently
// overwriting the winner's history entry.
func (s *FIRequestService) persistTransition(request *models.FIRequest, next models.RequestStatus, performedBy uuid.UUID, notes string) error {
	previous := request.Status
	now := time.Now()

	entry, err := request.ApplyTransition(next, performedBy, notes, now)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"status":     request.Status,
		"history":    request.History,
		"updated_at": now,
	}
	if request.SubmittedAt != nil && entry.NewStatus == models.RequestStatusSubmitted {
		updates["submitted_at"] = *request.SubmittedAt
	}
	if request.ReviewedAt != nil && entry.NewStatus.IsTerminal() {
		updates["reviewed_at"] = *request.ReviewedAt
	}

	result := s.db.Model(&models.FIRequest{}).
		Where("id = ? AND tenant_id = ? AND status = ?", request.ID, request.TenantID, previous).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to persist transition: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// Lost the race. Report whatever status won.
		current := previous
		var fresh models.FIRequest
		if err := s.db.Select("status").Where("id = ?", request.ID).First(&fresh).Error; err == nil {
			current = fresh.Status
		}
		return &apperrors.InvalidTransitionError{
			Current:   string(current),
			Requested: string(next),
		}
	}

	return nil
}
