package handler

import (
	"net/http"

	"github.com/osse101/DreamJournal_Go/internal/account"
)

// AuthHandler serves nickname/password accounts
type AuthHandler struct {
	accounts account.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accounts account.Service) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// CredentialsRequest is the body of register and login
type CredentialsRequest struct {
	Nickname string `json:"nickname" validate:"required,max=50,nickname"`
	Password string `json:"password" validate:"required,max=128"`
}

// HandleRegister creates an account and returns a session
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 201 {object} domain.LoginResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register"); err != nil {
		return
	}

	res, err := h.accounts.Register(r.Context(), req.Nickname, req.Password)
	if err != nil {
		respondServiceError(w, r, "Register", err)
		return
	}
	respondJSON(w, http.StatusCreated, res)
}

// HandleLogin checks credentials and returns a session
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} domain.LoginResult
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} LoginLimitResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
		return
	}

	res, err := h.accounts.Login(r.Context(), req.Nickname, req.Password)
	if err != nil {
		respondServiceError(w, r, "Login", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
