package billing

import (
	"github.com/shopspring/decimal"

	"github.com/mfp/backend/internal/models"
)

// Monetary amounts are carried as decimals and rounded half-up to two
// fractional digits per component. Line and invoice totals are derived from
// the rounded components, so the documented invariants hold exactly:
//
//	line_total  == raw_total - discount_amount + vat_amount
//	grand_total == subtotal  - discount_total  + vat_total

const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// LineResult holds the computed amounts for a single invoice line.
type LineResult struct {
	RawTotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	VATAmount      decimal.Decimal
	LineTotal      decimal.Decimal
}

// Totals holds the aggregate amounts of an invoice.
type Totals struct {
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	VATTotal      decimal.Decimal
	GrandTotal    decimal.Decimal
}

// ComputeLine computes the amounts for one line. Rates are percentages
// (10 means 10%). A VAT rate equal to the out-of-scope sentinel yields zero
// VAT; any other negative VAT rate is rejected.
func ComputeLine(unitPrice, quantity, discountRate, vatRate decimal.Decimal) (LineResult, error) {
	switch {
	case unitPrice.IsNegative():
		return LineResult{}, &InvalidLineInputError{Field: "unit_price", Reason: "must not be negative"}
	case !quantity.IsPositive():
		return LineResult{}, &InvalidLineInputError{Field: "quantity", Reason: "must be positive"}
	case discountRate.IsNegative() || discountRate.GreaterThan(hundred):
		return LineResult{}, &InvalidLineInputError{Field: "discount_rate", Reason: "must be between 0 and 100"}
	case vatRate.IsNegative() && !vatRate.Equal(models.VATRateOutOfScope):
		return LineResult{}, &InvalidLineInputError{Field: "vat_rate", Reason: "must not be negative"}
	}

	raw := unitPrice.Mul(quantity).Round(moneyPlaces)
	discount := raw.Mul(discountRate).Div(hundred).Round(moneyPlaces)
	vat := decimal.Zero
	if !vatRate.Equal(models.VATRateOutOfScope) {
		vat = raw.Sub(discount).Mul(vatRate).Div(hundred).Round(moneyPlaces)
	}
	return LineResult{
		RawTotal:       raw,
		DiscountAmount: discount,
		VATAmount:      vat,
		LineTotal:      raw.Sub(discount).Add(vat),
	}, nil
}

// ComputeTotals aggregates per-line amounts into invoice totals.
func ComputeTotals(lines []LineResult) Totals {
	t := Totals{
		Subtotal:      decimal.Zero,
		DiscountTotal: decimal.Zero,
		VATTotal:      decimal.Zero,
	}
	for _, l := range lines {
		t.Subtotal = t.Subtotal.Add(l.RawTotal)
		t.DiscountTotal = t.DiscountTotal.Add(l.DiscountAmount)
		t.VATTotal = t.VATTotal.Add(l.VATAmount)
	}
	t.GrandTotal = t.Subtotal.Sub(t.DiscountTotal).Add(t.VATTotal)
	return t
}
