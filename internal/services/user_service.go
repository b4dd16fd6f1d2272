// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/drivelane/dealer-backend/internal/apperrors"
	"github.com/drivelane/dealer-backend/internal/models"
	"github.com/drivelane/dealer-backend/internal/utils"
)

// UserService manages a tenant's staff accounts and workflow settings.
type UserService struct {
	db *gorm.DB
}

type CreateStaffRequest struct {
	Username string          `json:"username" validate:"required,username"`
	Email    string          `json:"email" validate:"required,email"`
	Phone    string          `json:"phone,omitempty" validate:"phone"`
	Password string          `json:"password" validate:"required,strong_password"`
	Role     models.UserRole `json:"role" validate:"required"`
}

type UpdateWorkflowSettingsRequest struct {
	FIManagerID          *uuid.UUID `json:"fi_manager_id"`
	LockTerminalRequests *bool      `json:"lock_terminal_requests"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) CreateStaff(tenantID uuid.UUID, req *CreateStaffRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	switch req.Role {
	case models.UserRoleDealer, models.UserRoleFIManager, models.UserRoleSeller:
	default:
		return nil, fmt.Errorf("%w: invalid staff role %q", apperrors.ErrValidation, req.Role)
	}

	var existing models.User
	if err := s.db.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: email or username already taken", apperrors.ErrValidation)
	}

	user := &models.User{
		TenantID: tenantID,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		Status:   models.UserStatusActive,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *UserService) ListStaff(tenantID uuid.UUID, params utils.PaginationParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{}).Where("tenant_id = ?", tenantID)
	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "username", "email", "role", "status"})
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

func (s *UserService) SetStatus(tenantID, userID uuid.UUID, status models.UserStatus) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ? AND tenant_id = ?", userID, tenantID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "user"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	user.Status = status
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}
	return &user, nil
}

// UpdateWorkflowSettings changes who reviews F&I requests and whether
// terminal requests are locked against further transitions.
func (s *UserService) UpdateWorkflowSettings(tenantID uuid.UUID, req *UpdateWorkflowSettingsRequest) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "tenant"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.FIManagerID != nil {
		// The manager must be one of the tenant's own reviewers.
		var manager models.User
		if err := s.db.Where("id = ? AND tenant_id = ?", *req.FIManagerID, tenantID).
			First(&manager).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &apperrors.NotFoundError{Resource: "user"}
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		if !manager.Role.IsReviewer() {
			return nil, fmt.Errorf("%w: user %s cannot review requests", apperrors.ErrValidation, manager.Username)
		}
		tenant.FIManagerID = req.FIManagerID
	}

	if req.LockTerminalRequests != nil {
		tenant.LockTerminalRequests = *req.LockTerminalRequests
	}

	if err := s.db.Save(&tenant).Error; err != nil {
		return nil, fmt.Errorf("failed to update tenant settings: %w", err)
	}
	return &tenant, nil
}
