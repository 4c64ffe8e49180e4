package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dlaird/pocketbank/pkg/events"
	"github.com/dlaird/pocketbank/pkg/insights"
	"github.com/dlaird/pocketbank/pkg/models"
	"github.com/dlaird/pocketbank/pkg/storage"
	"github.com/google/uuid"
)

// Ledger applies balance-affecting operations against a storage backend.
// Operations on the same account are serialized through per-account mutexes;
// a transfer locks both parties in lexicographic username order so that
// concurrent opposite-direction transfers cannot deadlock.
type Ledger struct {
	store     storage.Storage
	publisher events.Publisher
	logger    *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Ledger over the given store. A nil publisher disables event
// emission.
func New(store storage.Storage, publisher events.Publisher, logger *slog.Logger) *Ledger {
	if publisher == nil {
		publisher = &events.NoOpPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		store:     store,
		publisher: publisher,
		logger:    logger,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Make sure we conform to the interface
var _ Service = (*Ledger)(nil)

// CreateAccount registers a new account with a zero balance.
func (l *Ledger) CreateAccount(ctx context.Context, username, pin string, profile Profile) (*models.Account, error) {
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if !validPin(pin) {
		return nil, ErrInvalidPin
	}

	account := &models.Account{
		Username:  username,
		Pin:       pin,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		Phone:     profile.Phone,
		Balance:   0,
		Version:   1,
		CreatedAt: time.Now(),
	}

	created, err := l.store.CreateAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	l.logger.Info("account created", "username", username)
	return created, nil
}

// Authenticate verifies a username/PIN pair.
func (l *Ledger) Authenticate(ctx context.Context, username, pin string) error {
	if !validPin(pin) {
		return ErrInvalidPin
	}

	account, err := l.store.GetAccount(ctx, username)
	if err != nil {
		return err
	}

	if account.Pin != pin {
		l.logger.Warn("authentication failed", "username", username)
		return ErrInvalidCredentials
	}
	return nil
}

// GetBalance returns the account with its current balance.
func (l *Ledger) GetBalance(ctx context.Context, username string) (*models.Account, error) {
	return l.store.GetAccount(ctx, username)
}

// ListAccounts returns every account.
func (l *Ledger) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return l.store.ListAccounts(ctx)
}

// Deposit adds amount cents to the account and appends a deposit record.
func (l *Ledger) Deposit(ctx context.Context, username string, amount int64, note, idempotencyKey string) (*MutationResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	lock := l.accountLock(username)
	lock.Lock()
	defer lock.Unlock()

	if prior, err := l.priorTransaction(ctx, username, idempotencyKey); err != nil {
		return nil, err
	} else if prior != nil {
		return l.replayMutation(ctx, username, prior, models.DEPOSIT, amount)
	}

	tx := l.newTransaction(username, models.DEPOSIT, amount, "", note, idempotencyKey)
	account, err := l.store.Credit(ctx, tx)
	if err != nil {
		return nil, err
	}

	l.logger.Info("deposit applied", "username", username, "amount_cents", amount)
	l.publish(ctx, tx, account)
	return &MutationResult{Account: account, Transaction: tx}, nil
}

// Withdraw removes amount cents from the account and appends a withdrawal record.
func (l *Ledger) Withdraw(ctx context.Context, username string, amount int64, note, idempotencyKey string) (*MutationResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	lock := l.accountLock(username)
	lock.Lock()
	defer lock.Unlock()

	if prior, err := l.priorTransaction(ctx, username, idempotencyKey); err != nil {
		return nil, err
	} else if prior != nil {
		return l.replayMutation(ctx, username, prior, models.WITHDRAWAL, amount)
	}

	tx := l.newTransaction(username, models.WITHDRAWAL, amount, "", note, idempotencyKey)
	account, err := l.store.Debit(ctx, tx)
	if err != nil {
		return nil, err
	}

	l.logger.Info("withdrawal applied", "username", username, "amount_cents", amount)
	l.publish(ctx, tx, account)
	return &MutationResult{Account: account, Transaction: tx}, nil
}

// Transfer atomically moves amount cents between two accounts, appending a
// transfer_out record on the sender and a transfer_in record on the recipient.
func (l *Ledger) Transfer(ctx context.Context, from, to string, amount int64, note, idempotencyKey string) (*TransferResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if from == to {
		return nil, ErrSelfTransfer
	}

	first, second := l.accountLock(from), l.accountLock(to)
	if to < from {
		first, second = second, first
	}
	first.Lock()
	defer first.Unlock()
	second.Lock()
	defer second.Unlock()

	if prior, err := l.priorTransaction(ctx, from, idempotencyKey); err != nil {
		return nil, err
	} else if prior != nil {
		return l.replayTransfer(ctx, from, to, prior, amount)
	}

	sender, err := l.store.GetAccount(ctx, from)
	if err != nil {
		return nil, err
	}
	if _, err := l.store.GetAccount(ctx, to); err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}
	if sender.Balance < amount {
		return nil, storage.ErrInsufficientFunds
	}

	// Both legs share a timestamp and category so history views line up.
	outTx := l.newTransaction(from, models.TRANSFEROUT, amount, to, note, idempotencyKey)
	inTx := l.newTransaction(to, models.TRANSFERIN, amount, from, note, "")
	inTx.Timestamp = outTx.Timestamp

	updatedSender, updatedRecipient, err := l.store.Transfer(ctx, outTx, inTx)
	if err != nil {
		return nil, err
	}

	l.logger.Info("transfer applied", "from", from, "to", to, "amount_cents", amount)
	l.publish(ctx, outTx, updatedSender)
	l.publish(ctx, inTx, updatedRecipient)
	return &TransferResult{
		Sender:    updatedSender,
		Recipient: updatedRecipient,
		OutLeg:    outTx,
		InLeg:     inTx,
	}, nil
}

// GetTransactions returns the account's full history, oldest first.
func (l *Ledger) GetTransactions(ctx context.Context, username string) ([]models.Transaction, error) {
	if _, err := l.store.GetAccount(ctx, username); err != nil {
		return nil, err
	}
	return l.store.ListTransactionsByUsername(ctx, username)
}

// SpendingSummary computes the account's dominant spending category from its
// categorized outflows.
func (l *Ledger) SpendingSummary(ctx context.Context, username string) (*SpendingSummary, error) {
	if _, err := l.store.GetAccount(ctx, username); err != nil {
		return nil, err
	}

	transactions, err := l.store.ListTransactionsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int64)
	for i := range transactions {
		tx := &transactions[i]
		if tx.Category == "" || !tx.Outflow() {
			continue
		}
		totals[tx.Category] += tx.Amount
	}

	if len(totals) == 0 {
		return &SpendingSummary{Tip: "No spending insights available yet."}, nil
	}

	var topCategory string
	var topTotal int64
	for category, total := range totals {
		if total > topTotal || (total == topTotal && (topCategory == "" || category < topCategory)) {
			topCategory, topTotal = category, total
		}
	}

	return &SpendingSummary{
		HasData:  true,
		Category: topCategory,
		Total:    topTotal,
		Tip:      insights.Tip(topCategory),
	}, nil
}

// accountLock returns the mutex serializing operations on one account,
// creating it on first use.
func (l *Ledger) accountLock(username string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[username]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[username] = lock
	}
	return lock
}

// priorTransaction looks up an already-applied mutation for the idempotency key.
func (l *Ledger) priorTransaction(ctx context.Context, username, idempotencyKey string) (*models.Transaction, error) {
	if idempotencyKey == "" {
		return nil, nil
	}
	prior, err := l.store.GetTransactionByIdempotencyKey(ctx, username, idempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	return prior, nil
}

// replayMutation returns the already-applied result without touching balances.
// The replayed request must match the recorded transaction; a reused key with
// different parameters is a conflict, not a replay.
func (l *Ledger) replayMutation(ctx context.Context, username string, prior *models.Transaction, txType models.TransactionType, amount int64) (*MutationResult, error) {
	if prior.Type != txType || prior.Amount != amount {
		return nil, ErrIdempotencyConflict
	}
	account, err := l.store.GetAccount(ctx, username)
	if err != nil {
		return nil, err
	}
	l.logger.Info("idempotent replay", "username", username, "transaction_id", prior.Id)
	return &MutationResult{Account: account, Transaction: prior, Duplicate: true}, nil
}

// replayTransfer returns the already-applied transfer without touching balances.
// The replayed request must match the recorded outgoing leg.
func (l *Ledger) replayTransfer(ctx context.Context, from, to string, prior *models.Transaction, amount int64) (*TransferResult, error) {
	if prior.Type != models.TRANSFEROUT || prior.Counterparty != to || prior.Amount != amount {
		return nil, ErrIdempotencyConflict
	}
	sender, err := l.store.GetAccount(ctx, from)
	if err != nil {
		return nil, err
	}
	recipient, err := l.store.GetAccount(ctx, to)
	if err != nil {
		return nil, err
	}
	l.logger.Info("idempotent replay", "username", from, "transaction_id", prior.Id)
	return &TransferResult{Sender: sender, Recipient: recipient, OutLeg: prior, Duplicate: true}, nil
}

// newTransaction builds an immutable log record for an operation.
func (l *Ledger) newTransaction(username string, txType models.TransactionType, amount int64, counterparty, note, idempotencyKey string) *models.Transaction {
	return &models.Transaction{
		Id:              uuid.New().String(),
		AccountUsername: username,
		Type:            txType,
		Amount:          amount,
		Counterparty:    counterparty,
		Note:            note,
		Category:        insights.Categorize(note),
		IdempotencyKey:  idempotencyKey,
		Timestamp:       time.Now(),
	}
}

// publish emits a transaction event. Publish failures are logged, never
// surfaced; the ledger state is already committed.
func (l *Ledger) publish(ctx context.Context, tx *models.Transaction, account *models.Account) {
	event := events.TransactionEvent{
		TransactionId: tx.Id,
		Type:          string(tx.Type),
		Username:      tx.AccountUsername,
		Counterparty:  tx.Counterparty,
		AmountCents:   tx.Amount,
		BalanceCents:  account.Balance,
		OccurredAt:    tx.Timestamp,
	}
	if err := l.publisher.Publish(ctx, event); err != nil {
		l.logger.Error("failed to publish transaction event", "transaction_id", tx.Id, "error", err)
	}
}

func validPin(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
