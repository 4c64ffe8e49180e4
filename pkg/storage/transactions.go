package storage

import (
	"context"

	"github.com/dlaird/pocketbank/pkg/models"
)

// TransactionLog defines read access to the append-only transaction log.
type TransactionLog interface {
	// ListTransactionsByUsername retrieves every transaction recorded for the
	// account, oldest first. An account with no history yields an empty slice.
	ListTransactionsByUsername(ctx context.Context, username string) ([]models.Transaction, error)

	// GetTransactionByIdempotencyKey looks up a previously recorded transaction
	// by the client-supplied idempotency key. It returns (nil, nil) when no
	// transaction carries the key.
	GetTransactionByIdempotencyKey(ctx context.Context, username, key string) (*models.Transaction, error)
}

// LedgerWriter defines the balance-mutating operations. Each call either
// commits the balance change together with its transaction record(s), or
// leaves the store untouched.
type LedgerWriter interface {
	// Credit adds tx.Amount to the account named by tx.AccountUsername and
	// appends tx. It returns the updated account.
	Credit(ctx context.Context, tx *models.Transaction) (*models.Account, error)

	// Debit subtracts tx.Amount from the account named by tx.AccountUsername
	// and appends tx. It fails with ErrInsufficientFunds if the balance would
	// go negative.
	Debit(ctx context.Context, tx *models.Transaction) (*models.Account, error)

	// Transfer atomically moves outTx.Amount from the sender to the recipient
	// and appends both legs. Either every effect is committed or none are.
	// It returns the updated sender and recipient accounts.
	Transfer(ctx context.Context, outTx, inTx *models.Transaction) (*models.Account, *models.Account, error)
}
