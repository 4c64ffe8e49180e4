package memory

import (
	"context"
	"sync"

	"github.com/dlaird/pocketbank/pkg/models"
	"github.com/dlaird/pocketbank/pkg/storage"
)

// Store is an in-memory implementation of storage.Storage. It is safe for
// concurrent use; all state is guarded by a single mutex. Suitable for tests
// and for running the demo without AWS credentials.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
	log      []models.Transaction
	byKey    map[string]*models.Transaction
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		accounts: make(map[string]*models.Account),
		byKey:    make(map[string]*models.Transaction),
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// CreateAccount persists a new account record.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.Username]; exists {
		return nil, storage.ErrDuplicateUsername
	}

	stored := *account
	s.accounts[account.Username] = &stored

	copied := stored
	return &copied, nil
}

// GetAccount retrieves an account by username.
func (s *Store) GetAccount(ctx context.Context, username string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getAccountLocked(username)
}

// ListAccounts retrieves all accounts.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]models.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, *account)
	}
	return accounts, nil
}

// Credit adds tx.Amount to the account balance and appends tx to the log.
func (s *Store) Credit(ctx context.Context, tx *models.Transaction) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.getAccountLocked(tx.AccountUsername)
	if err != nil {
		return nil, err
	}

	stored := s.accounts[tx.AccountUsername]
	stored.Balance += tx.Amount
	stored.Version++
	s.appendLocked(tx)

	*account = *stored
	return account, nil
}

// Debit subtracts tx.Amount from the account balance and appends tx to the log.
func (s *Store) Debit(ctx context.Context, tx *models.Transaction) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.getAccountLocked(tx.AccountUsername)
	if err != nil {
		return nil, err
	}

	stored := s.accounts[tx.AccountUsername]
	if stored.Balance < tx.Amount {
		return nil, storage.ErrInsufficientFunds
	}
	stored.Balance -= tx.Amount
	stored.Version++
	s.appendLocked(tx)

	*account = *stored
	return account, nil
}

// Transfer atomically moves funds between two accounts and appends both legs.
// All validation failures leave the store untouched.
func (s *Store) Transfer(ctx context.Context, outTx, inTx *models.Transaction) (*models.Account, *models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sender, err := s.getAccountLocked(outTx.AccountUsername)
	if err != nil {
		return nil, nil, err
	}
	recipient, err := s.getAccountLocked(inTx.AccountUsername)
	if err != nil {
		return nil, nil, err
	}

	storedSender := s.accounts[outTx.AccountUsername]
	storedRecipient := s.accounts[inTx.AccountUsername]
	if storedSender.Balance < outTx.Amount {
		return nil, nil, storage.ErrInsufficientFunds
	}

	storedSender.Balance -= outTx.Amount
	storedSender.Version++
	storedRecipient.Balance += inTx.Amount
	storedRecipient.Version++
	s.appendLocked(outTx)
	s.appendLocked(inTx)

	*sender = *storedSender
	*recipient = *storedRecipient
	return sender, recipient, nil
}

// ListTransactionsByUsername retrieves the account's transactions in append order.
func (s *Store) ListTransactionsByUsername(ctx context.Context, username string) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions := make([]models.Transaction, 0)
	for _, tx := range s.log {
		if tx.AccountUsername == username {
			transactions = append(transactions, tx)
		}
	}
	return transactions, nil
}

// GetTransactionByIdempotencyKey looks up a recorded transaction by key.
func (s *Store) GetTransactionByIdempotencyKey(ctx context.Context, username, key string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.byKey[username+"\x00"+key]
	if !ok {
		return nil, nil
	}
	copied := *tx
	return &copied, nil
}

// getAccountLocked returns a copy of the stored account. Callers must hold s.mu.
func (s *Store) getAccountLocked(username string) (*models.Account, error) {
	stored, ok := s.accounts[username]
	if !ok {
		return nil, storage.ErrAccountNotFound
	}
	copied := *stored
	return &copied, nil
}

// appendLocked records a transaction and indexes its idempotency key.
// Callers must hold s.mu.
func (s *Store) appendLocked(tx *models.Transaction) {
	copied := *tx
	s.log = append(s.log, copied)
	if tx.IdempotencyKey != "" {
		s.byKey[tx.AccountUsername+"\x00"+tx.IdempotencyKey] = &s.log[len(s.log)-1]
	}
}
