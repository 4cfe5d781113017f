package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mfp/backend/internal/billing"
	"github.com/mfp/backend/internal/models"
)

func seedInvoiceFixtures(t *testing.T, db *gorm.DB) (models.Customer, models.Product) {
	t.Helper()
	customer := models.Customer{Name: "Ertan Market", TaxNumber: "1234567890"}
	require.NoError(t, db.Create(&customer).Error)
	product := models.Product{Name: "Filter Coffee 1kg", Unit: "Adet", UnitPrice: dec(t, "100.00"), VATRate: dec(t, "20")}
	require.NoError(t, db.Create(&product).Error)
	return customer, product
}

func staffUser() *models.User {
	return &models.User{ID: 1, Username: "staff", Role: models.RoleRepresentative}
}

func TestInvoiceCreate(t *testing.T) {
	db := newTestDB(t)
	customer, product := seedInvoiceFixtures(t, db)
	h := NewInvoiceHandler(billing.NewService(db))

	rec := httptest.NewRecorder()
	h.Create(rec, jsonRequest(t, http.MethodPost, "/invoices", map[string]any{
		"customer_id": customer.ID,
		"items": []map[string]any{
			{"product_id": product.ID, "quantity": "2", "discount_rate": "10"},
		},
	}, staffUser()))

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["invoice_number"], "FAT-")
	assert.Equal(t, "216", body["grand_total"])
}

func TestInvoiceCreateUnknownCustomer(t *testing.T) {
	db := newTestDB(t)
	_, product := seedInvoiceFixtures(t, db)
	h := NewInvoiceHandler(billing.NewService(db))

	rec := httptest.NewRecorder()
	h.Create(rec, jsonRequest(t, http.MethodPost, "/invoices", map[string]any{
		"customer_id": 999,
		"items":       []map[string]any{{"product_id": product.ID, "quantity": "1"}},
	}, staffUser()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "customer_not_found", decodeBody(t, rec)["error"])
}

func TestInvoiceCreateUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	customer, _ := seedInvoiceFixtures(t, db)
	h := NewInvoiceHandler(billing.NewService(db))

	rec := httptest.NewRecorder()
	h.Create(rec, jsonRequest(t, http.MethodPost, "/invoices", map[string]any{
		"customer_id": customer.ID,
		"items":       []map[string]any{{"product_id": 999, "quantity": "1"}},
	}, staffUser()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "product_not_found", decodeBody(t, rec)["error"])
}

func TestInvoiceCreateTooManyItems(t *testing.T) {
	db := newTestDB(t)
	customer, product := seedInvoiceFixtures(t, db)
	h := NewInvoiceHandler(billing.NewService(db))

	items := make([]map[string]any, 0, billing.MaxInvoiceItems+1)
	for i := 0; i < billing.MaxInvoiceItems+1; i++ {
		items = append(items, map[string]any{"product_id": product.ID, "quantity": "1"})
	}
	rec := httptest.NewRecorder()
	h.Create(rec, jsonRequest(t, http.MethodPost, "/invoices", map[string]any{
		"customer_id": customer.ID,
		"items":       items,
	}, staffUser()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invoice_limit_exceeded", decodeBody(t, rec)["error"])
}

func createInvoice(t *testing.T, db *gorm.DB, customerID, productID uint) *models.Invoice {
	t.Helper()
	inv, err := billing.NewService(db).Create(context.Background(), billing.CreateRequest{
		CustomerID: customerID,
		Items:      []billing.LineRequest{{ProductID: productID, Quantity: dec(t, "2")}},
	})
	require.NoError(t, err)
	return inv
}

func TestInvoiceGet(t *testing.T) {
	db := newTestDB(t)
	customer, product := seedInvoiceFixtures(t, db)
	inv := createInvoice(t, db, customer.ID, product.ID)
	h := NewInvoiceHandler(billing.NewService(db))

	req := jsonRequest(t, http.MethodGet, "/invoices/"+strconv.Itoa(int(inv.ID)), nil, staffUser())
	req.SetPathValue("id", strconv.Itoa(int(inv.ID)))
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, inv.Number, body["invoice_number"])
	assert.Equal(t, "Ertan Market", body["customer"].(map[string]any)["name"])
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Filter Coffee 1kg", items[0].(map[string]any)["product"].(map[string]any)["name"])
}

func TestInvoiceGetNotFound(t *testing.T) {
	db := newTestDB(t)
	h := NewInvoiceHandler(billing.NewService(db))

	req := jsonRequest(t, http.MethodGet, "/invoices/42", nil, staffUser())
	req.SetPathValue("id", "42")
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "invoice_not_found", decodeBody(t, rec)["error"])
}

func TestInvoiceGetOwnership(t *testing.T) {
	db := newTestDB(t)
	customer, product := seedInvoiceFixtures(t, db)
	other := models.Customer{Name: "Başka Bakkal"}
	require.NoError(t, db.Create(&other).Error)
	inv := createInvoice(t, db, customer.ID, product.ID)
	h := NewInvoiceHandler(billing.NewService(db))

	// A customer account linked to a different customer is refused.
	outsider := &models.User{ID: 2, Username: "bakkal", Role: models.RoleCustomer, CustomerID: &other.ID}
	req := jsonRequest(t, http.MethodGet, "/invoices/"+strconv.Itoa(int(inv.ID)), nil, outsider)
	req.SetPathValue("id", strconv.Itoa(int(inv.ID)))
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The owner reads it fine.
	owner := &models.User{ID: 3, Username: "market", Role: models.RoleCustomer, CustomerID: &customer.ID}
	req = jsonRequest(t, http.MethodGet, "/invoices/"+strconv.Itoa(int(inv.ID)), nil, owner)
	req.SetPathValue("id", strconv.Itoa(int(inv.ID)))
	rec = httptest.NewRecorder()
	h.Get(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInvoicePDF(t *testing.T) {
	db := newTestDB(t)
	customer, product := seedInvoiceFixtures(t, db)
	inv := createInvoice(t, db, customer.ID, product.ID)
	h := NewInvoiceHandler(billing.NewService(db))

	req := jsonRequest(t, http.MethodGet, "/invoices/"+strconv.Itoa(int(inv.ID))+"/pdf", nil, staffUser())
	req.SetPathValue("id", strconv.Itoa(int(inv.ID)))
	rec := httptest.NewRecorder()
	h.PDF(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Fatura_")
	assert.Equal(t, "%PDF", rec.Body.String()[:4])
}
