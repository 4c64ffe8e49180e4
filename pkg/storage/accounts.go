package storage

import (
	"context"

	"github.com/dlaird/pocketbank/pkg/models"
)

// AccountStore defines the interface for managing account records.
type AccountStore interface {
	// CreateAccount persists a new account. It fails with ErrDuplicateUsername
	// if an account with the same username already exists.
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetAccount retrieves an account by username.
	GetAccount(ctx context.Context, username string) (*models.Account, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]models.Account, error)
}
