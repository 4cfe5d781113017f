// Package pdf renders persisted invoices as PDF documents with maroto.
// It consumes the invoice read model only; it never reaches back into the
// catalog, so the rendered amounts always match what was billed.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mfp/backend/internal/models"
)

// RenderInvoice produces the sales invoice document for inv. The customer
// and line products must be preloaded; display fields come from them at
// render time while all amounts come from the invoice snapshot.
func RenderInvoice(inv *models.Invoice) ([]byte, error) {
	if inv.Customer == nil {
		return nil, fmt.Errorf("invoice %d: customer not loaded", inv.ID)
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Sales Invoice", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	m.AddRow(24,
		col.New(7).Add(
			text.New(inv.Customer.Name, props.Text{Style: fontstyle.Bold}),
			text.New("Tax no: "+orDash(inv.Customer.TaxNumber), props.Text{Top: 5, Size: 9}),
			text.New(inv.Customer.Address, props.Text{Top: 9, Size: 9}),
		),
		col.New(5).Add(
			text.New("Invoice no: "+inv.Number, props.Text{Align: align.Right, Style: fontstyle.Bold}),
			text.New("Date: "+inv.Date.Format("02.01.2006 15:04"), props.Text{Top: 5, Align: align.Right, Size: 9}),
		),
	)

	m.AddRow(8,
		text.NewCol(2, "Barcode", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Product", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Disc %", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "VAT %", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Total", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range inv.Items {
		name, barcode := "-", "-"
		if item.Product != nil {
			name = item.Product.Name
			if item.Product.Barcode != nil {
				barcode = *item.Product.Barcode
			}
		}
		vat := item.VATRate.StringFixed(0)
		if item.VATRate.Equal(models.VATRateOutOfScope) {
			vat = "-"
		}
		m.AddRow(7,
			text.NewCol(2, barcode, props.Text{Size: 8}),
			text.NewCol(4, name, props.Text{Size: 8}),
			text.NewCol(1, item.Quantity.String(), props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, item.UnitPrice.StringFixed(2), props.Text{Size: 8, Align: align.Right}),
			text.NewCol(1, item.DiscountRate.StringFixed(0), props.Text{Size: 8, Align: align.Right}),
			text.NewCol(1, vat, props.Text{Size: 8, Align: align.Right}),
			text.NewCol(1, item.LineTotal.StringFixed(2), props.Text{Size: 8, Align: align.Right}),
		)
	}

	totals := []struct {
		label string
		value string
		bold  bool
	}{
		{"Subtotal", inv.Subtotal.StringFixed(2), false},
		{"Discount", "-" + inv.DiscountTotal.StringFixed(2), false},
		{"VAT", inv.VATTotal.StringFixed(2), false},
		{"Grand total", inv.GrandTotal.StringFixed(2), true},
	}
	for _, row := range totals {
		style := fontstyle.Normal
		if row.bold {
			style = fontstyle.Bold
		}
		m.AddRow(6,
			col.New(8),
			text.NewCol(2, row.label, props.Text{Size: 9, Style: style}),
			text.NewCol(2, row.value, props.Text{Size: 9, Style: style, Align: align.Right}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
