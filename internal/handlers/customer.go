package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mfp/backend/internal/auth"
	"github.com/mfp/backend/internal/httpx"
	"github.com/mfp/backend/internal/models"
	"github.com/mfp/backend/internal/validation"
)

// CustomerHandler serves customer CRUD. Accounts with the customer role only
// ever see their own record.
type CustomerHandler struct {
	DB *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{DB: db}
}

// List: GET /customers
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	if user.Role == models.RoleCustomer {
		if user.CustomerID == nil {
			httpx.JSONError(w, http.StatusNotFound, "customer_not_found", "no customer record linked to this account")
			return
		}
		var customer models.Customer
		if err := h.DB.First(&customer, *user.CustomerID).Error; err != nil {
			httpx.JSONError(w, http.StatusNotFound, "customer_not_found", "")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"items": []models.Customer{customer}, "total": int64(1)})
		return
	}

	limit, offset := pagination(r, 50, 200)
	var total int64
	if err := h.DB.Model(&models.Customer{}).Count(&total).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	var customers []models.Customer
	if err := h.DB.Order("name").Limit(limit).Offset(offset).Find(&customers).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": customers, "total": total, "limit": limit, "offset": offset})
}

// Create: POST /customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string          `json:"name"`
		TaxNumber       string          `json:"tax_number"`
		Address         string          `json:"address"`
		Phone           string          `json:"phone"`
		DefaultDiscount decimal.Decimal `json:"default_discount"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	v := make(validation.Violations)
	validation.Required("name", req.Name, v)
	validation.DecimalRange("default_discount", req.DefaultDiscount, decimal.Zero, decimal.NewFromInt(100), v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v.First())
		return
	}

	customer := models.Customer{
		Name:            req.Name,
		TaxNumber:       req.TaxNumber,
		Address:         req.Address,
		Phone:           req.Phone,
		DefaultDiscount: req.DefaultDiscount,
	}
	if err := h.DB.Create(&customer).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, customer)
}

// Delete: DELETE /customers/{id}
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	var customer models.Customer
	if err := h.DB.First(&customer, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "customer_not_found", "")
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if err := h.DB.Delete(&customer).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "customer deleted"})
}
