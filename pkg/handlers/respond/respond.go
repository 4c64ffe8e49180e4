// Package respond centralizes JSON response writing and the mapping from
// domain errors to HTTP statuses and client-facing detail messages.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dlaird/pocketbank/pkg/api"
	"github.com/dlaird/pocketbank/pkg/ledger"
	"github.com/dlaird/pocketbank/pkg/mapping"
	"github.com/dlaird/pocketbank/pkg/storage"
)

// JSON writes v as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "error", err)
	}
}

// Detail writes an error body with the given status and detail message.
func Detail(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, api.Error{Detail: detail})
}

// Error writes an error body with the status implied by err.
func Error(w http.ResponseWriter, err error) {
	Detail(w, statusFor(err), err.Error())
}

// statusFor maps domain errors onto the HTTP statuses the client contract
// expects. Anything unrecognized is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrAccountNotFound),
		errors.Is(err, ledger.ErrRecipientNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, storage.ErrInsufficientFunds),
		errors.Is(err, storage.ErrDuplicateUsername),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidPin),
		errors.Is(err, ledger.ErrInvalidUsername),
		errors.Is(err, ledger.ErrSelfTransfer),
		errors.Is(err, mapping.ErrTooPrecise),
		errors.Is(err, mapping.ErrAmountOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrStaleAccount),
		errors.Is(err, ledger.ErrIdempotencyConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
