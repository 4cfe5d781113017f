package billing

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the invoice service. Handlers translate them
// into structured HTTP responses; none of them leave partial state behind.
var (
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvoiceLimitExceeded = fmt.Errorf("an invoice may carry at most %d lines", MaxInvoiceItems)
)

// ProductNotFoundError aborts the whole invoice: billing a request with a
// missing product would silently under-charge, so no line is ever skipped.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// InvalidLineInputError reports a line request that violates the arithmetic
// constraints before any computation is attempted.
type InvalidLineInputError struct {
	Field  string
	Reason string
}

func (e *InvalidLineInputError) Error() string {
	return fmt.Sprintf("invalid line input: %s %s", e.Field, e.Reason)
}
