package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a billing account. Invoices reference it by ID only; display
// fields (name, tax number, address) are resolved at render time so that a
// customer edit shows up on re-rendered documents.
type Customer struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"size:200;not null" json:"name"`
	TaxNumber       string          `gorm:"size:64" json:"tax_number,omitempty"`
	Address         string          `gorm:"size:500" json:"address,omitempty"`
	Phone           string          `gorm:"size:32" json:"phone,omitempty"`
	DefaultDiscount decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"default_discount"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
