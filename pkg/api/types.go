// Package api defines the JSON request and response shapes of the HTTP
// surface. Monetary amounts cross the wire as decimals; the domain works in
// integer cents.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Detail string `json:"detail"`
}

// CreateUserRequest is the body for POST /api/create-user.
type CreateUserRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Pin       string `json:"pin"`
}

// CreateUserResponse is the body for a successful registration.
type CreateUserResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// AuthenticateRequest is the body for POST /api/authenticate.
type AuthenticateRequest struct {
	Username string `json:"username"`
	Pin      string `json:"pin"`
}

// MessageResponse carries a bare human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// AmountRequest is the body for POST /api/deposit and POST /api/withdraw.
type AmountRequest struct {
	Username       string          `json:"username"`
	Amount         decimal.Decimal `json:"amount"`
	Note           string          `json:"note,omitempty"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

// TransferRequest is the body for POST /api/transfer.
type TransferRequest struct {
	FromUser       string          `json:"from_user"`
	ToUser         string          `json:"to_user"`
	Amount         decimal.Decimal `json:"amount"`
	Note           string          `json:"note,omitempty"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

// BalanceResponse is the body for GET /api/balance/{username}.
type BalanceResponse struct {
	Username string          `json:"username"`
	Balance  decimal.Decimal `json:"balance"`
}

// MutationResponse is the body for a successful deposit or withdrawal.
// Duplicate is true when an idempotency key matched an earlier request and
// the operation was not re-applied.
type MutationResponse struct {
	Message       string          `json:"message"`
	Username      string          `json:"username"`
	TransactionId string          `json:"transaction_id"`
	NewBalance    decimal.Decimal `json:"new_balance"`
	Duplicate     bool            `json:"duplicate,omitempty"`
}

// TransferDetails echoes the applied transfer back to the caller.
type TransferDetails struct {
	TransactionId string          `json:"transaction_id"`
	FromUser      string          `json:"from_user"`
	ToUser        string          `json:"to_user"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note,omitempty"`
}

// TransferResponse is the body for a successful transfer.
type TransferResponse struct {
	Message         string                     `json:"message"`
	Transaction     TransferDetails            `json:"transaction"`
	UpdatedBalances map[string]decimal.Decimal `json:"updated_balances"`
	Duplicate       bool                       `json:"duplicate,omitempty"`
}

// Transaction is a single history entry as rendered to clients.
type Transaction struct {
	Id           string          `json:"id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Counterparty string          `json:"counterparty,omitempty"`
	Note         string          `json:"note,omitempty"`
	Category     string          `json:"category,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

// TransactionsResponse is the body for GET /api/transactions/{username}.
type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

// SpendingSummaryResponse is the body for GET /api/spending-summary/{username}.
type SpendingSummaryResponse struct {
	HasData  bool            `json:"has_data"`
	Category string          `json:"category,omitempty"`
	Total    decimal.Decimal `json:"total"`
	Tip      string          `json:"tip"`
}
