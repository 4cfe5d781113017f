package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/mfp/backend/internal/httpx"
	"github.com/mfp/backend/internal/models"
)

// UserHandler serves account administration; the router restricts it to
// admins.
type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// List: GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := h.DB.Order("id").Find(&users).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": users, "total": int64(len(users))})
}

// Get: GET /users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	var user models.User
	if err := h.DB.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "user_not_found", "")
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
