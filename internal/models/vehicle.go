// internal/models/vehicle.go
package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vehicle is one unit of a tenant's inventory, shown on the storefront.
type Vehicle struct {
	BaseModel
	TenantID    uuid.UUID       `json:"tenant_id" gorm:"type:uuid;not null;index"`
	VIN         string          `json:"vin" gorm:"size:17;index"`
	Make        string          `json:"make" gorm:"size:50;not null"`
	Model       string          `json:"model" gorm:"size:50;not null"`
	Year        int             `json:"year" gorm:"not null"`
	Trim        string          `json:"trim,omitempty" gorm:"size:50"`
	Mileage     int             `json:"mileage"`
	Color       string          `json:"color,omitempty" gorm:"size:30"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Status      VehicleStatus   `json:"status" gorm:"type:varchar(20);default:'available';index"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	Features    JSONB           `json:"features" gorm:"type:jsonb"`
	PhotoURLs   JSONB           `json:"photo_urls" gorm:"type:jsonb"`
	CreatedBy   uuid.UUID       `json:"created_by" gorm:"type:uuid;not null;index"`

	// Relationships
	Tenant  *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Creator *User   `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

// Title is the storefront display name, e.g. "2021 Toyota Camry SE".
func (v *Vehicle) Title() string {
	if v.Trim != "" {
		return fmt.Sprintf("%d %s %s %s", v.Year, v.Make, v.Model, v.Trim)
	}
	return fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
}
