package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/mfp/backend/internal/auth"
	"github.com/mfp/backend/internal/httpx"
	"github.com/mfp/backend/internal/models"
	"github.com/mfp/backend/internal/validation"
)

// AuthHandler issues bearer tokens and creates accounts.
type AuthHandler struct {
	DB     *gorm.DB
	Secret string
}

func NewAuthHandler(db *gorm.DB, secret string) *AuthHandler {
	return &AuthHandler{DB: db, Secret: secret}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register: POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username   string      `json:"username"`
		Email      string      `json:"email"`
		Password   string      `json:"password"`
		Role       models.Role `json:"role"`
		CustomerID *uint       `json:"customer_id"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Role == "" {
		req.Role = models.RoleCustomer
	}

	v := make(validation.Violations)
	validation.Required("username", req.Username, v)
	validation.Required("email", req.Email, v)
	validation.Required("password", req.Password, v)
	if !models.ValidRole(req.Role) {
		v["role"] = "unknown_role"
	}
	if req.Role == models.RoleCustomer && req.CustomerID == nil {
		v["customer_id"] = "required_for_customer_role"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v.First())
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if count > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "user_exists", "a user with this username or email already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		CustomerID:   req.CustomerID,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	token, err := auth.IssueToken(h.Secret, &user, auth.TokenTTL)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Login: POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	var user models.User
	err := h.DB.Where("username = ?", req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !auth.CheckPassword(user.PasswordHash, req.Password)) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", "wrong username or password")
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	token, err := auth.IssueToken(h.Secret, &user, auth.TokenTTL)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me: GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	httpx.JSON(w, http.StatusOK, user)
}
