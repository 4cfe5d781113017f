package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mfp/backend/internal/auth"
	"github.com/mfp/backend/internal/billing"
	"github.com/mfp/backend/internal/httpx"
	"github.com/mfp/backend/internal/models"
	"github.com/mfp/backend/internal/pdf"
)

// InvoiceHandler exposes the billing service over HTTP: creation, read-back
// and PDF download. All computation lives in the service; this layer only
// decodes requests and maps the error taxonomy to statuses.
type InvoiceHandler struct {
	Svc *billing.Service
}

func NewInvoiceHandler(svc *billing.Service) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc}
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID uint `json:"customer_id"`
		Items      []struct {
			ProductID    uint             `json:"product_id"`
			Quantity     decimal.Decimal  `json:"quantity"`
			DiscountRate *decimal.Decimal `json:"discount_rate"`
		} `json:"items"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	create := billing.CreateRequest{CustomerID: req.CustomerID}
	for _, item := range req.Items {
		create.Items = append(create.Items, billing.LineRequest{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			DiscountRate: item.DiscountRate,
		})
	}

	invoice, err := h.Svc.Create(r.Context(), create)
	if err != nil {
		writeBillingError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, invoice)
}

// Get: GET /invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	invoice, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, invoice)
}

// PDF: GET /invoices/{id}/pdf
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	invoice, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	doc, err := pdf.RenderInvoice(invoice)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_render_failed", "")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "Fatura_"+strconv.FormatUint(uint64(invoice.ID), 10)+".pdf"))
	_, _ = w.Write(doc)
}

// loadOwned fetches the invoice from the path and enforces that customer
// accounts only reach their own invoices.
func (h *InvoiceHandler) loadOwned(w http.ResponseWriter, r *http.Request) (*models.Invoice, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", "")
		return nil, false
	}
	invoice, err := h.Svc.Get(r.Context(), uint(id))
	if err != nil {
		writeBillingError(w, err)
		return nil, false
	}
	user, _ := auth.UserFromContext(r.Context())
	if user.Role == models.RoleCustomer && !user.OwnsCustomer(invoice.CustomerID) {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", "you may only access your own invoices")
		return nil, false
	}
	return invoice, true
}

func writeBillingError(w http.ResponseWriter, err error) {
	var productErr *billing.ProductNotFoundError
	var lineErr *billing.InvalidLineInputError
	switch {
	case errors.Is(err, billing.ErrCustomerNotFound):
		httpx.JSONError(w, http.StatusNotFound, "customer_not_found", err.Error())
	case errors.Is(err, billing.ErrInvoiceNotFound):
		httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", err.Error())
	case errors.Is(err, billing.ErrInvoiceLimitExceeded):
		httpx.JSONError(w, http.StatusBadRequest, "invoice_limit_exceeded", err.Error())
	case errors.As(err, &productErr):
		httpx.JSONError(w, http.StatusNotFound, "product_not_found", productErr.Error())
	case errors.As(err, &lineErr):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_line_input", lineErr.Error())
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
	}
}
