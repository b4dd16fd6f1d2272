// internal/services/client_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/drivelane/dealer-backend/internal/apperrors"
	"github.com/drivelane/dealer-backend/internal/models"
	"github.com/drivelane/dealer-backend/internal/utils"
)

type ClientService struct {
	db *gorm.DB
}

type CreateClientRequest struct {
	FirstName         string           `json:"first_name" validate:"required,max=100"`
	LastName          string           `json:"last_name" validate:"required,max=100"`
	Email             string           `json:"email,omitempty" validate:"omitempty,email"`
	Phone             string           `json:"phone,omitempty" validate:"phone"`
	Address           string           `json:"address,omitempty"`
	VehicleOfInterest *uuid.UUID       `json:"vehicle_of_interest,omitempty"`
	VehiclePrice      *decimal.Decimal `json:"vehicle_price,omitempty"`
	DownPayment       *decimal.Decimal `json:"down_payment,omitempty"`
	Notes             string           `json:"notes,omitempty"`
}

type UpdateClientRequest struct {
	FirstName         *string          `json:"first_name,omitempty"`
	LastName          *string          `json:"last_name,omitempty"`
	Email             *string          `json:"email,omitempty"`
	Phone             *string          `json:"phone,omitempty"`
	Address           *string          `json:"address,omitempty"`
	VehicleOfInterest *uuid.UUID       `json:"vehicle_of_interest,omitempty"`
	VehiclePrice      *decimal.Decimal `json:"vehicle_price,omitempty"`
	DownPayment       *decimal.Decimal `json:"down_payment,omitempty"`
	Notes             *string          `json:"notes,omitempty"`
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

func (s *ClientService) Create(tenantID, createdBy uuid.UUID, req *CreateClientRequest) (*models.Client, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if req.VehiclePrice != nil && req.VehiclePrice.IsNegative() {
		return nil, fmt.Errorf("%w: vehicle price cannot be negative", apperrors.ErrValidation)
	}
	if req.DownPayment != nil && req.DownPayment.IsNegative() {
		return nil, fmt.Errorf("%w: down payment cannot be negative", apperrors.ErrValidation)
	}

	client := &models.Client{
		TenantID:          tenantID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		VehicleOfInterest: req.VehicleOfInterest,
		VehiclePrice:      req.VehiclePrice,
		DownPayment:       req.DownPayment,
		Notes:             req.Notes,
		CreatedBy:         createdBy,
	}

	if err := s.db.Create(client).Error; err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (s *ClientService) Get(tenantID, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "client"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &client, nil
}

func (s *ClientService) List(tenantID uuid.UUID, params utils.PaginationParams) ([]models.Client, int64, error) {
	query := s.db.Model(&models.Client{}).Where("tenant_id = ?", tenantID)
	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "first_name", "last_name", "email"})
	query = utils.ApplyPagination(query, params)

	var clients []models.Client
	if err := query.Find(&clients).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch clients: %w", err)
	}

	return clients, total, nil
}

func (s *ClientService) Update(tenantID, id uuid.UUID, req *UpdateClientRequest) (*models.Client, error) {
	client, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		client.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		client.LastName = *req.LastName
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.VehicleOfInterest != nil {
		client.VehicleOfInterest = req.VehicleOfInterest
	}
	if req.VehiclePrice != nil {
		client.VehiclePrice = req.VehiclePrice
	}
	if req.DownPayment != nil {
		client.DownPayment = req.DownPayment
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if err := s.db.Save(client).Error; err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *ClientService) Delete(tenantID, id uuid.UUID) error {
	client, err := s.Get(tenantID, id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(client).Error; err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
