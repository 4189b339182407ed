package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"statement-ledger/internal/services"
)

func respondWithError(w http.ResponseWriter, code int, errorCode, message string) {
	respondWithJSON(w, code, map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// statusFor maps a service error to the HTTP status and error code sent
// to the client. ok is false for errors that are not part of the ledger
// taxonomy.
func statusFor(err error) (status int, code string, ok bool) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound, "user_not_found", true
	case errors.Is(err, services.ErrStatementNotFound):
		return http.StatusNotFound, "statement_not_found", true
	case errors.Is(err, services.ErrInsufficientFunds):
		return http.StatusBadRequest, "insufficient_funds", true
	case errors.Is(err, services.ErrDuplicateUser):
		return http.StatusBadRequest, "user_already_exists", true
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidOperation),
		errors.Is(err, services.ErrSelfTransfer),
		errors.Is(err, services.ErrMissingFields):
		return http.StatusBadRequest, "invalid_request", true
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, "authentication_failed", true
	}
	return http.StatusInternalServerError, "internal_error", false
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	status, code, ok := statusFor(err)
	if !ok {
		respondWithError(w, status, code, "An internal error occurred")
		return
	}
	respondWithError(w, status, code, err.Error())
}
