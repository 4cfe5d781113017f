package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mfp/backend/internal/models"
)

// MaxInvoiceItems caps the number of lines a single invoice may carry.
// Requests above the cap are rejected outright rather than truncated.
const MaxInvoiceItems = 25

// maxNumberAttempts bounds transparent retries after a numbering race.
const maxNumberAttempts = 3

// LineRequest asks for one invoice line. A nil DiscountRate falls back to
// the customer's default discount.
type LineRequest struct {
	ProductID    uint
	Quantity     decimal.Decimal
	DiscountRate *decimal.Decimal
}

// CreateRequest asks for a complete invoice.
type CreateRequest struct {
	CustomerID uint
	Items      []LineRequest
}

// Service assembles and persists invoices. It is the only writer of the
// invoices, invoice_items and invoice_sequences tables.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Create builds an invoice from req and persists it with its lines in one
// transaction. Any failure rolls the whole unit of work back; on success the
// returned invoice carries its durable ID and number. A numbering race is
// retried transparently.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Invoice, error) {
	if len(req.Items) > MaxInvoiceItems {
		return nil, ErrInvoiceLimitExceeded
	}
	var inv *models.Invoice
	var err error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		inv, err = s.createOnce(ctx, req)
		if err == nil || !isNumberConflict(err) {
			return inv, err
		}
	}
	return nil, fmt.Errorf("invoice number allocation kept racing: %w", err)
}

func (s *Service) createOnce(ctx context.Context, req CreateRequest) (*models.Invoice, error) {
	issuedAt := s.now()
	var invoice models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, req.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return fmt.Errorf("load customer %d: %w", req.CustomerID, err)
		}

		items := make([]models.InvoiceItem, 0, len(req.Items))
		results := make([]LineResult, 0, len(req.Items))
		for i, line := range req.Items {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductNotFoundError{ProductID: line.ProductID}
				}
				return fmt.Errorf("load product %d: %w", line.ProductID, err)
			}
			discount := customer.DefaultDiscount
			if line.DiscountRate != nil {
				discount = *line.DiscountRate
			}
			res, err := ComputeLine(product.UnitPrice, line.Quantity, discount, product.VATRate)
			if err != nil {
				return err
			}
			items = append(items, models.InvoiceItem{
				ProductID:    product.ID,
				Quantity:     line.Quantity,
				UnitPrice:    product.UnitPrice,
				DiscountRate: discount,
				VATRate:      product.VATRate,
				LineTotal:    res.LineTotal,
				Position:     i,
			})
			results = append(results, res)
		}

		totals := ComputeTotals(results)
		number, err := nextNumber(tx, issuedAt)
		if err != nil {
			return err
		}
		invoice = models.Invoice{
			Number:        number,
			Date:          issuedAt,
			CustomerID:    customer.ID,
			Subtotal:      totals.Subtotal,
			DiscountTotal: totals.DiscountTotal,
			VATTotal:      totals.VATTotal,
			GrandTotal:    totals.GrandTotal,
			Items:         items,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return fmt.Errorf("persist invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Get loads a persisted invoice with its lines (input order), line products
// and customer.
func (s *Service) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Items.Product").
		Preload("Customer").
		First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("load invoice %d: %w", id, err)
	}
	return &invoice, nil
}
