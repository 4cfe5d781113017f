package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a persisted sales invoice. It is immutable once created: the
// number never changes, and monetary totals are stored rather than recomputed
// from the catalog, so later price edits do not rewrite history.
type Invoice struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Number        string          `gorm:"size:50;not null;uniqueIndex" json:"invoice_number"`
	Date          time.Time       `gorm:"not null" json:"date"`
	CustomerID    uint            `gorm:"index;not null" json:"customer_id"`
	Customer      *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DiscountTotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount_total"`
	VATTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"vat_total"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"grand_total"`
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InvoiceItem is one line of an invoice. UnitPrice and VATRate are snapshots
// of the product at invoice time. Items belong exclusively to their invoice
// and are removed with it.
type InvoiceItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	InvoiceID    uint            `gorm:"index;not null" json:"-"`
	ProductID    uint            `gorm:"index;not null" json:"product_id"`
	Product      *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity     decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	DiscountRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount_rate"`
	VATRate      decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"vat_rate"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
	// Position preserves input order for display.
	Position int `gorm:"not null;default:0" json:"position"`
}

// InvoiceSequence is the single counter row backing invoice numbering.
// The counter is global and never resets; the issue year only prefixes the
// formatted number.
type InvoiceSequence struct {
	ID    uint  `gorm:"primaryKey"`
	Value int64 `gorm:"not null"`
}
