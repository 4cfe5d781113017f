package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VATRateOutOfScope marks a product that is outside VAT scope entirely.
// Lines for such products carry zero VAT regardless of the discounted amount.
var VATRateOutOfScope = decimal.NewFromInt(-1)

// PermittedVATRates is the closed set of billable VAT percentages, plus the
// out-of-scope sentinel.
var PermittedVATRates = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(5),
	decimal.NewFromInt(10),
	decimal.NewFromInt(16),
	decimal.NewFromInt(20),
	VATRateOutOfScope,
}

// ValidVATRate reports whether rate is one of the permitted VAT rates.
func ValidVATRate(rate decimal.Decimal) bool {
	for _, r := range PermittedVATRates {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}

// Product is a catalog entry. Its price and VAT rate are read-only inputs to
// invoice computation; invoices snapshot both, so editing or deleting a
// product never alters an existing invoice.
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Barcode   *string         `gorm:"size:64;uniqueIndex" json:"barcode,omitempty"`
	Unit      string          `gorm:"size:50;not null;default:'Adet'" json:"unit"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	VATRate   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"vat_rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
