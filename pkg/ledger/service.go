package ledger

import (
	"context"

	"github.com/dlaird/pocketbank/pkg/models"
)

// Profile carries the non-credential registration details for a new account.
type Profile struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// MutationResult is the outcome of a deposit or withdrawal.
type MutationResult struct {
	Account     *models.Account
	Transaction *models.Transaction

	// Duplicate is true when the idempotency key matched a previously recorded
	// transaction and the operation was not re-applied.
	Duplicate bool
}

// TransferResult is the outcome of a transfer between two accounts.
type TransferResult struct {
	Sender    *models.Account
	Recipient *models.Account
	OutLeg    *models.Transaction
	InLeg     *models.Transaction

	// Duplicate is true when the idempotency key matched a previously recorded
	// transfer. Only OutLeg is populated in that case.
	Duplicate bool
}

// SpendingSummary aggregates categorized outflows for an account.
type SpendingSummary struct {
	HasData  bool
	Category string
	Total    int64
	Tip      string
}

// AccountService defines the account lifecycle and authentication operations.
type AccountService interface {
	// CreateAccount registers a new account with a zero balance.
	CreateAccount(ctx context.Context, username, pin string, profile Profile) (*models.Account, error)

	// Authenticate verifies a username/PIN pair.
	Authenticate(ctx context.Context, username, pin string) error

	// GetBalance returns the account with its current balance.
	GetBalance(ctx context.Context, username string) (*models.Account, error)

	// ListAccounts returns every account.
	ListAccounts(ctx context.Context) ([]models.Account, error)
}

// TransactionService defines the balance-affecting operations and history access.
type TransactionService interface {
	// Deposit adds amount (in cents) to the account.
	Deposit(ctx context.Context, username string, amount int64, note, idempotencyKey string) (*MutationResult, error)

	// Withdraw removes amount (in cents) from the account.
	Withdraw(ctx context.Context, username string, amount int64, note, idempotencyKey string) (*MutationResult, error)

	// Transfer moves amount (in cents) from one account to another.
	Transfer(ctx context.Context, from, to string, amount int64, note, idempotencyKey string) (*TransferResult, error)

	// GetTransactions returns the account's full history, oldest first.
	GetTransactions(ctx context.Context, username string) ([]models.Transaction, error)
}

// InsightsService defines the derived reporting operations.
type InsightsService interface {
	// SpendingSummary computes the account's dominant spending category.
	SpendingSummary(ctx context.Context, username string) (*SpendingSummary, error)
}

// Service composes every ledger operation exposed to the API layer.
type Service interface {
	AccountService
	TransactionService
	InsightsService
}
