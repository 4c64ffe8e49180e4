package storage

import "errors"

// ErrAccountNotFound is returned when no account exists for a username.
var ErrAccountNotFound = errors.New("account not found")

// ErrDuplicateUsername is returned when creating an account whose username is taken.
var ErrDuplicateUsername = errors.New("username already exists")

// ErrInsufficientFunds is returned when a debit would drive a balance negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrStaleAccount is returned when a conditional write loses an optimistic
// locking race and should be retried by the caller.
var ErrStaleAccount = errors.New("account version conflict")
