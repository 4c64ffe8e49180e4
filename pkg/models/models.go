package models

import (
	"time"
)

// TransactionType defines the kind of a ledger transaction. The direction of
// the money movement is encoded here; Transaction.Amount is always a positive
// magnitude.
type TransactionType string

const (
	DEPOSIT     TransactionType = "deposit"
	WITHDRAWAL  TransactionType = "withdrawal"
	TRANSFEROUT TransactionType = "transfer_out"
	TRANSFERIN  TransactionType = "transfer_in"
)

// Account represents the internal domain model for a user account.
// Balance is held in integer cents. Version supports optimistic locking in
// storage backends that need it.
type Account struct {
	Username  string    `json:"username" dynamodbav:"username"`
	Pin       string    `json:"-" dynamodbav:"pin"`
	FirstName string    `json:"first_name" dynamodbav:"first_name"`
	LastName  string    `json:"last_name" dynamodbav:"last_name"`
	Email     string    `json:"email" dynamodbav:"email"`
	Phone     string    `json:"phone" dynamodbav:"phone"`
	Balance   int64     `json:"balance" dynamodbav:"balance"`
	Version   int64     `json:"version" dynamodbav:"version"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Transaction represents a single immutable entry in the transaction log.
type Transaction struct {
	Id              string          `dynamodbav:"id"`
	AccountUsername string          `dynamodbav:"account_username"`
	Type            TransactionType `dynamodbav:"type"`
	Amount          int64           `dynamodbav:"amount"`
	Counterparty    string          `dynamodbav:"counterparty,omitempty"`
	Note            string          `dynamodbav:"note,omitempty"`
	Category        string          `dynamodbav:"category,omitempty"`
	IdempotencyKey  string          `dynamodbav:"idempotency_key,omitempty"`
	Timestamp       time.Time       `dynamodbav:"timestamp"`
}

// SignedAmount returns the amount with the sign implied by the transaction
// type: negative for money leaving the account, positive for money entering.
func (t *Transaction) SignedAmount() int64 {
	switch t.Type {
	case WITHDRAWAL, TRANSFEROUT:
		return -t.Amount
	default:
		return t.Amount
	}
}

// Outflow reports whether the transaction moved money out of the account.
func (t *Transaction) Outflow() bool {
	return t.Type == WITHDRAWAL || t.Type == TRANSFEROUT
}
