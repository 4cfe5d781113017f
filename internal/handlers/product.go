package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mfp/backend/internal/httpx"
	"github.com/mfp/backend/internal/models"
	"github.com/mfp/backend/internal/validation"
)

// ProductHandler serves catalog CRUD.
type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: db}
}

// List: GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50, 200)
	var total int64
	if err := h.DB.Model(&models.Product{}).Count(&total).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	var products []models.Product
	if err := h.DB.Order("name").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products, "total": total, "limit": limit, "offset": offset})
}

// Create: POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string          `json:"name"`
		Barcode   *string         `json:"barcode"`
		Unit      string          `json:"unit"`
		UnitPrice decimal.Decimal `json:"unit_price"`
		VATRate   decimal.Decimal `json:"vat_rate"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	v := make(validation.Violations)
	validation.Required("name", req.Name, v)
	validation.NonNegativeDecimal("unit_price", req.UnitPrice, v)
	if !models.ValidVATRate(req.VATRate) {
		v["vat_rate"] = "not_a_permitted_rate"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v.First())
		return
	}

	var count int64
	if err := h.DB.Model(&models.Product{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if count > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "product_exists", "a product with this name already exists")
		return
	}

	product := models.Product{
		Name:      req.Name,
		Barcode:   req.Barcode,
		Unit:      req.Unit,
		UnitPrice: req.UnitPrice,
		VATRate:   req.VATRate,
	}
	if product.Unit == "" {
		product.Unit = "Adet"
	}
	if err := h.DB.Create(&product).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

// Delete: DELETE /products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	var product models.Product
	if err := h.DB.First(&product, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "product_not_found", "")
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if err := h.DB.Delete(&product).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// pagination reads limit/page query params with caps shared by the list
// endpoints.
func pagination(r *http.Request, def, max int) (limit, offset int) {
	limit = def
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= max {
			limit = n
		}
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * limit
		}
	}
	return limit, offset
}
