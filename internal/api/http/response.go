package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/logger"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string   `json:"error"`
	Code      string   `json:"code"`
	Details   []string `json:"details,omitempty"`
	RequestID string   `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details []string) {
	writeJSON(w, status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Anything not
// recognized is a 500 that keeps the underlying message.
func RespondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation  domain.ValidationError
		amount      domain.InvalidAmountError
		computation domain.ComputationError
	)
	switch {
	case errors.As(err, &amount):
		respondError(w, r, http.StatusBadRequest, "invalid_amount", amount.Error(), nil)
	case errors.As(err, &validation):
		respondError(w, r, http.StatusBadRequest, "validation_error", validation.Error(), validation.Details())
	case domain.IsNotFound(err):
		respondError(w, r, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(w, r, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.As(err, &computation):
		logger.ErrorContext(r.Context(), "Computation failed", "error", err)
		respondError(w, r, http.StatusInternalServerError, "computation_error", computation.Error(), nil)
	default:
		logger.ErrorContext(r.Context(), "Request failed", "error", err)
		respondError(w, r, http.StatusInternalServerError, "internal_error", err.Error(), nil)
	}
}
