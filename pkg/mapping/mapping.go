package mapping

import (
	"errors"

	"github.com/dlaird/pocketbank/pkg/api"
	"github.com/dlaird/pocketbank/pkg/models"
	"github.com/shopspring/decimal"
)

// ErrTooPrecise is returned when an amount carries more than two decimal places.
var ErrTooPrecise = errors.New("amount must have at most two decimal places")

// ErrAmountOutOfRange is returned when an amount does not fit in 64-bit cents.
var ErrAmountOutOfRange = errors.New("amount is out of range")

var oneHundred = decimal.NewFromInt(100)

// ToCents converts a decimal currency amount to integer cents.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Mul(oneHundred)
	if !cents.IsInteger() {
		return 0, ErrTooPrecise
	}
	// IntPart silently truncates values that overflow int64.
	if !cents.BigInt().IsInt64() {
		return 0, ErrAmountOutOfRange
	}
	return cents.IntPart(), nil
}

// FromCents converts integer cents back to a two-decimal currency amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToApiTransaction converts a domain Transaction to its API representation.
func ToApiTransaction(tx *models.Transaction) api.Transaction {
	return api.Transaction{
		Id:           tx.Id,
		Type:         string(tx.Type),
		Amount:       FromCents(tx.Amount),
		Counterparty: tx.Counterparty,
		Note:         tx.Note,
		Category:     tx.Category,
		Timestamp:    tx.Timestamp,
	}
}

// ToApiTransactions converts a slice of domain Transactions, newest first.
func ToApiTransactions(transactions []models.Transaction) []api.Transaction {
	converted := make([]api.Transaction, 0, len(transactions))
	for i := len(transactions) - 1; i >= 0; i-- {
		converted = append(converted, ToApiTransaction(&transactions[i]))
	}
	return converted
}

// ToBalanceResponse converts a domain Account to the balance response shape.
func ToBalanceResponse(account *models.Account) api.BalanceResponse {
	return api.BalanceResponse{
		Username: account.Username,
		Balance:  FromCents(account.Balance),
	}
}
