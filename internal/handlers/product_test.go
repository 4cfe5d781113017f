package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfp/backend/internal/models"
)

func TestProductCreate(t *testing.T) {
	db := newTestDB(t)
	h := NewProductHandler(db)

	rec := httptest.NewRecorder()
	h.Create(rec, jsonRequest(t, http.MethodPost, "/products", map[string]any{
		"name":       "Süt 1L",
		"barcode":    "8690000000011",
		"unit_price": "24.50",
		"vat_rate":   "10",
	}, nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Süt 1L", body["name"])
	// Unit falls back to the default when omitted.
	assert.Equal(t, "Adet", body["unit"])

	var stored models.Product
	require.NoError(t, db.Where("name = ?", "Süt 1L").First(&stored).Error)
	assert.True(t, stored.UnitPrice.Equal(dec(t, "24.50")))
}

func TestProductCreateRejectsUnknownVATRate(t *testing.T) {
	db := newTestDB(t)
	h := NewProductHandler(db)

	rec := httptest.NewRecorder()
	h.Create(rec, jsonRequest(t, http.MethodPost, "/products", map[string]any{
		"name":       "Çay",
		"unit_price": "10.00",
		"vat_rate":   "7",
	}, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_failed", decodeBody(t, rec)["error"])
}

func TestProductCreateAcceptsOutOfScopeRate(t *testing.T) {
	db := newTestDB(t)
	h := NewProductHandler(db)

	rec := httptest.NewRecorder()
	h.Create(rec, jsonRequest(t, http.MethodPost, "/products", map[string]any{
		"name":       "Gazete",
		"unit_price": "5.00",
		"vat_rate":   "-1",
	}, nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestProductCreateDuplicateName(t *testing.T) {
	db := newTestDB(t)
	h := NewProductHandler(db)

	payload := map[string]any{"name": "Süt 1L", "unit_price": "24.50", "vat_rate": "10"}
	rec := httptest.NewRecorder()
	h.Create(rec, jsonRequest(t, http.MethodPost, "/products", payload, nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.Create(rec, jsonRequest(t, http.MethodPost, "/products", payload, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "product_exists", decodeBody(t, rec)["error"])
}

func TestProductList(t *testing.T) {
	db := newTestDB(t)
	h := NewProductHandler(db)
	for _, name := range []string{"Zeytin", "Ayran", "Makarna"} {
		require.NoError(t, db.Create(&models.Product{
			Name: name, Unit: "Adet", UnitPrice: dec(t, "10.00"), VATRate: dec(t, "10"),
		}).Error)
	}

	rec := httptest.NewRecorder()
	h.List(rec, jsonRequest(t, http.MethodGet, "/products?limit=2", nil, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 3, body["total"])
	items := body["items"].([]any)
	require.Len(t, items, 2)
	// Ordered by name.
	assert.Equal(t, "Ayran", items[0].(map[string]any)["name"])
	assert.Equal(t, "Makarna", items[1].(map[string]any)["name"])
}

func TestProductDelete(t *testing.T) {
	db := newTestDB(t)
	h := NewProductHandler(db)
	product := models.Product{Name: "Süt 1L", Unit: "Adet", UnitPrice: dec(t, "24.50"), VATRate: dec(t, "10")}
	require.NoError(t, db.Create(&product).Error)

	req := jsonRequest(t, http.MethodDelete, "/products/"+strconv.Itoa(int(product.ID)), nil, nil)
	req.SetPathValue("id", strconv.Itoa(int(product.ID)))
	rec := httptest.NewRecorder()
	h.Delete(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)

	req = jsonRequest(t, http.MethodDelete, "/products/999", nil, nil)
	req.SetPathValue("id", "999")
	rec = httptest.NewRecorder()
	h.Delete(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
