package ledger

import "errors"

// ErrInvalidAmount is returned when a mutation is requested with a
// non-positive amount.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrInvalidPin is returned when a PIN is not a 4-digit numeric string.
var ErrInvalidPin = errors.New("pin must be a 4-digit number")

// ErrInvalidCredentials is returned when authentication fails on a PIN mismatch.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidUsername is returned when a username is empty.
var ErrInvalidUsername = errors.New("username must not be empty")

// ErrSelfTransfer is returned when the sender and recipient of a transfer are
// the same account.
var ErrSelfTransfer = errors.New("sender and recipient cannot be the same account")

// ErrRecipientNotFound is returned when the recipient of a transfer does not exist.
var ErrRecipientNotFound = errors.New("recipient account not found")

// ErrIdempotencyConflict is returned when an idempotency key is reused with
// parameters that differ from the transaction it originally recorded.
var ErrIdempotencyConflict = errors.New("idempotency key was already used with different parameters")
