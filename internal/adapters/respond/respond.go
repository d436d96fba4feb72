// Package respond writes JSON responses and maps the domain error taxonomy
// to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/milkwise/mother-care-service/internal/core/domain"
)

// ErrorResponse is the uniform error body. Validation failures additionally
// carry per-field messages so forms can place them next to inputs.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"campos,omitempty"`
}

// WriteJSON writes a JSON body with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// WriteError writes a plain error body.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteDomainError maps the error taxonomy:
// validation 400, conflict 409, unauthorized 401, not found 404, anything
// else a generic 500 with no internal detail leaked.
func WriteDomainError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "dados inválidos", Fields: verr.Fields})
	case errors.Is(err, domain.ErrConflict):
		WriteError(w, http.StatusConflict, "já cadastrado")
	case errors.Is(err, domain.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, "não autorizado")
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, "não encontrado")
	default:
		WriteError(w, http.StatusInternalServerError, "erro interno")
	}
}
