// internal/models/client.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client is a dealership customer, the applicant behind an F&I request.
type Client struct {
	BaseModel
	TenantID  uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;index"`
	FirstName string    `json:"first_name" gorm:"size:100;not null"`
	LastName  string    `json:"last_name" gorm:"size:100;not null"`
	Email     string    `json:"email,omitempty" gorm:"size:255;index"`
	Phone     string    `json:"phone,omitempty" gorm:"size:20"`
	Address   string    `json:"address,omitempty" gorm:"type:text"`

	// Vehicle interest, used by the F&I metrics join for the derived
	// down-payment and loan-amount averages.
	VehicleOfInterest *uuid.UUID       `json:"vehicle_of_interest,omitempty" gorm:"type:uuid"`
	VehiclePrice      *decimal.Decimal `json:"vehicle_price,omitempty" gorm:"type:decimal(12,2)"`
	DownPayment       *decimal.Decimal `json:"down_payment,omitempty" gorm:"type:decimal(12,2)"`

	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null;index"`

	// Relationships
	Tenant     *Tenant     `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Creator    *User       `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	FIRequests []FIRequest `json:"fi_requests,omitempty" gorm:"foreignKey:ClientID"`
}

func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// LoanAmount is the financed portion of the vehicle of interest. Nil when
// either price or down payment is unknown.
func (c *Client) LoanAmount() *decimal.Decimal {
	if c.VehiclePrice == nil || c.DownPayment == nil {
		return nil
	}
	amount := c.VehiclePrice.Sub(*c.DownPayment)
	return &amount
}
