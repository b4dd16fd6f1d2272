// internal/services/vehicle_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/drivelane/dealer-backend/internal/apperrors"
	"github.com/drivelane/dealer-backend/internal/config"
	"github.com/drivelane/dealer-backend/internal/models"
	"github.com/drivelane/dealer-backend/internal/utils"
)

type VehicleService struct {
	db       *gorm.DB
	cfg      *config.Config
	aiClient *openai.Client
}

type CreateVehicleRequest struct {
	VIN         string                 `json:"vin,omitempty" validate:"omitempty,len=17"`
	Make        string                 `json:"make" validate:"required,max=50"`
	Model       string                 `json:"model" validate:"required,max=50"`
	Year        int                    `json:"year" validate:"required,min=1950,max=2100"`
	Trim        string                 `json:"trim,omitempty" validate:"max=50"`
	Mileage     int                    `json:"mileage" validate:"min=0"`
	Color       string                 `json:"color,omitempty" validate:"max=30"`
	Price       decimal.Decimal        `json:"price" validate:"required"`
	Description string                 `json:"description,omitempty"`
	Features    map[string]interface{} `json:"features,omitempty"`
}

type UpdateVehicleRequest struct {
	Mileage     *int                   `json:"mileage,omitempty"`
	Color       *string                `json:"color,omitempty"`
	Price       *decimal.Decimal       `json:"price,omitempty"`
	Status      *models.VehicleStatus  `json:"status,omitempty"`
	Description *string                `json:"description,omitempty"`
	Features    map[string]interface{} `json:"features,omitempty"`
}

func NewVehicleService(db *gorm.DB, cfg *config.Config) *VehicleService {
	s := &VehicleService{db: db, cfg: cfg}
	if cfg.OpenAI.APIKey != "" {
		s.aiClient = openai.NewClient(cfg.OpenAI.APIKey)
	}
	return s
}

func (s *VehicleService) Create(tenantID, createdBy uuid.UUID, req *CreateVehicleRequest) (*models.Vehicle, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrValidation)
	}

	vehicle := &models.Vehicle{
		TenantID:    tenantID,
		VIN:         strings.ToUpper(req.VIN),
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Trim:        req.Trim,
		Mileage:     req.Mileage,
		Color:       req.Color,
		Price:       req.Price,
		Status:      models.VehicleStatusAvailable,
		Description: req.Description,
		Features:    models.JSONB(req.Features),
		CreatedBy:   createdBy,
	}

	if err := s.db.Create(vehicle).Error; err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *VehicleService) Get(tenantID, id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "vehicle"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &vehicle, nil
}

func (s *VehicleService) List(tenantID uuid.UUID, status *models.VehicleStatus, params utils.PaginationParams) ([]models.Vehicle, int64, error) {
	query := s.db.Model(&models.Vehicle{}).Where("tenant_id = ?", tenantID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("make ILIKE ? OR model ILIKE ? OR vin ILIKE ?", term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "price", "year", "mileage", "make"})
	query = utils.ApplyPagination(query, params)

	var vehicles []models.Vehicle
	if err := query.Find(&vehicles).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch vehicles: %w", err)
	}

	return vehicles, total, nil
}

func (s *VehicleService) Update(tenantID, id uuid.UUID, req *UpdateVehicleRequest) (*models.Vehicle, error) {
	vehicle, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Mileage != nil {
		vehicle.Mileage = *req.Mileage
	}
	if req.Color != nil {
		vehicle.Color = *req.Color
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrValidation)
		}
		vehicle.Price = *req.Price
	}
	if req.Status != nil {
		vehicle.Status = *req.Status
	}
	if req.Description != nil {
		vehicle.Description = *req.Description
	}
	if req.Features != nil {
		vehicle.Features = models.JSONB(req.Features)
	}

	if err := s.db.Save(vehicle).Error; err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *VehicleService) Delete(tenantID, id uuid.UUID) error {
	vehicle, err := s.Get(tenantID, id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(vehicle).Error; err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return nil
}

// AttachPhoto records an uploaded photo URL on the vehicle.
func (s *VehicleService) AttachPhoto(tenantID, id uuid.UUID, url string) (*models.Vehicle, error) {
	vehicle, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	if vehicle.PhotoURLs == nil {
		vehicle.PhotoURLs = models.JSONB{"urls": []interface{}{}}
	}
	urls, _ := vehicle.PhotoURLs["urls"].([]interface{})
	vehicle.PhotoURLs["urls"] = append(urls, url)

	if err := s.db.Save(vehicle).Error; err != nil {
		return nil, fmt.Errorf("failed to attach photo: %w", err)
	}
	return vehicle, nil
}

// GenerateDescription writes a storefront listing description for the
// vehicle with the configured OpenAI model and stores it.
func (s *VehicleService) GenerateDescription(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error) {
	if s.aiClient == nil {
		return nil, fmt.Errorf("%w: AI generation is not configured", apperrors.ErrValidation)
	}

	vehicle, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"Write a short, enthusiastic dealership listing description (max 120 words) for a %s with %d miles, color %s, priced at $%s. Plain text, no headings.",
		vehicle.Title(), vehicle.Mileage, vehicle.Color, vehicle.Price.StringFixed(2),
	)

	resp, err := s.aiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.OpenAI.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You write concise, truthful used-car listing copy for dealership storefronts.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("description generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("description generation returned no choices")
	}

	vehicle.Description = strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := s.db.Save(vehicle).Error; err != nil {
		return nil, fmt.Errorf("failed to store description: %w", err)
	}
	return vehicle, nil
}
