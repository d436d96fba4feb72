package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/milkwise/mother-care-service/internal/adapters/middleware"
	"github.com/milkwise/mother-care-service/internal/adapters/respond"
	"github.com/milkwise/mother-care-service/internal/core/ports"
)

type AuthHandler struct {
	auth ports.AuthService
	log  zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}

type changePasswordRequest struct {
	Password string `json:"senha"`
}

// ChangePassword handles POST /alterarsenha for the authenticated mother.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	motherID, ok := middleware.MotherID(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "não autorizado")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	if err := h.auth.ChangePassword(r.Context(), motherID, req.Password); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword handles POST /esqueceusenha. The response is identical for
// known and unknown emails.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
