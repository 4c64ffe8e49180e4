package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/dlaird/pocketbank/pkg/ledger"
	"github.com/dlaird/pocketbank/pkg/models"
	"github.com/dlaird/pocketbank/pkg/storage"
	"github.com/dlaird/pocketbank/pkg/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T) (*ledger.Ledger, *memory.Store) {
	t.Helper()
	store := memory.New()
	return ledger.New(store, nil, nil), store
}

func createAccount(t *testing.T, l *ledger.Ledger, username string) {
	t.Helper()
	_, err := l.CreateAccount(context.Background(), username, "1234", ledger.Profile{})
	require.NoError(t, err)
}

// balanceEqualsHistory checks the core ledger invariant: the balance equals
// the sum of signed transaction amounts.
func balanceEqualsHistory(t *testing.T, l *ledger.Ledger, username string) {
	t.Helper()
	account, err := l.GetBalance(context.Background(), username)
	require.NoError(t, err)
	transactions, err := l.GetTransactions(context.Background(), username)
	require.NoError(t, err)

	var sum int64
	for i := range transactions {
		sum += transactions[i].SignedAmount()
	}
	assert.Equal(t, account.Balance, sum)
}

func TestCreateAccount(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		l, _ := newLedger(t)

		account, err := l.CreateAccount(context.Background(), "alice", "1234", ledger.Profile{FirstName: "Alice"})

		require.NoError(t, err)
		assert.Equal(t, "alice", account.Username)
		assert.Equal(t, int64(0), account.Balance)
		assert.Equal(t, "Alice", account.FirstName)
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")

		_, err := l.CreateAccount(context.Background(), "alice", "1234", ledger.Profile{})

		assert.ErrorIs(t, err, storage.ErrDuplicateUsername)
	})

	t.Run("Bad Pin", func(t *testing.T) {
		l, _ := newLedger(t)

		for _, pin := range []string{"", "123", "12345", "12a4"} {
			_, err := l.CreateAccount(context.Background(), "alice", pin, ledger.Profile{})
			assert.ErrorIs(t, err, ledger.ErrInvalidPin)
		}
	})

	t.Run("Empty Username", func(t *testing.T) {
		l, _ := newLedger(t)

		_, err := l.CreateAccount(context.Background(), "", "1234", ledger.Profile{})

		assert.ErrorIs(t, err, ledger.ErrInvalidUsername)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")

		assert.NoError(t, l.Authenticate(context.Background(), "alice", "1234"))
	})

	t.Run("Wrong Pin", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")

		err := l.Authenticate(context.Background(), "alice", "9999")

		assert.ErrorIs(t, err, ledger.ErrInvalidCredentials)
	})

	t.Run("Malformed Pin", func(t *testing.T) {
		l, _ := newLedger(t)

		err := l.Authenticate(context.Background(), "alice", "12ab")

		assert.ErrorIs(t, err, ledger.ErrInvalidPin)
	})

	t.Run("Unknown User", func(t *testing.T) {
		l, _ := newLedger(t)

		err := l.Authenticate(context.Background(), "ghost", "1234")

		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
	})
}

func TestDeposit(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")

		result, err := l.Deposit(context.Background(), "alice", 5000, "", "")

		require.NoError(t, err)
		assert.Equal(t, int64(5000), result.Account.Balance)
		assert.Equal(t, models.DEPOSIT, result.Transaction.Type)
		assert.Equal(t, int64(5000), result.Transaction.Amount)
		assert.False(t, result.Duplicate)
		balanceEqualsHistory(t, l, "alice")
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")

		for _, amount := range []int64{0, -100} {
			_, err := l.Deposit(context.Background(), "alice", amount, "", "")
			assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
		}

		transactions, err := l.GetTransactions(context.Background(), "alice")
		require.NoError(t, err)
		assert.Empty(t, transactions)
	})

	t.Run("Unknown User", func(t *testing.T) {
		l, _ := newLedger(t)

		_, err := l.Deposit(context.Background(), "ghost", 100, "", "")

		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
	})

	t.Run("Note Is Categorized", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")

		result, err := l.Deposit(context.Background(), "alice", 100, "pizza with friends", "")

		require.NoError(t, err)
		assert.Equal(t, "food", result.Transaction.Category)
	})
}

func TestWithdraw(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")
		_, err := l.Deposit(context.Background(), "alice", 15000, "", "")
		require.NoError(t, err)

		result, err := l.Withdraw(context.Background(), "alice", 5000, "", "")

		require.NoError(t, err)
		assert.Equal(t, int64(10000), result.Account.Balance)
		assert.Equal(t, models.WITHDRAWAL, result.Transaction.Type)
		balanceEqualsHistory(t, l, "alice")
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")
		_, err := l.Deposit(context.Background(), "alice", 15000, "", "")
		require.NoError(t, err)

		_, err = l.Withdraw(context.Background(), "alice", 20000, "", "")
		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)

		account, err := l.GetBalance(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(15000), account.Balance)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")

		_, err := l.Withdraw(context.Background(), "alice", -1, "", "")

		assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
	})
}

func TestTransfer(t *testing.T) {
	setup := func(t *testing.T) *ledger.Ledger {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")
		createAccount(t, l, "bob")
		_, err := l.Deposit(context.Background(), "alice", 15000, "", "")
		require.NoError(t, err)
		return l
	}

	t.Run("Success", func(t *testing.T) {
		l := setup(t)

		result, err := l.Transfer(context.Background(), "alice", "bob", 5000, "", "")

		require.NoError(t, err)
		assert.Equal(t, int64(10000), result.Sender.Balance)
		assert.Equal(t, int64(5000), result.Recipient.Balance)
		assert.Equal(t, models.TRANSFEROUT, result.OutLeg.Type)
		assert.Equal(t, "bob", result.OutLeg.Counterparty)
		assert.Equal(t, models.TRANSFERIN, result.InLeg.Type)
		assert.Equal(t, "alice", result.InLeg.Counterparty)
		assert.Equal(t, result.OutLeg.Amount, result.InLeg.Amount)
		assert.Equal(t, result.OutLeg.Timestamp, result.InLeg.Timestamp)

		balanceEqualsHistory(t, l, "alice")
		balanceEqualsHistory(t, l, "bob")
	})

	t.Run("Insufficient Funds Is Atomic", func(t *testing.T) {
		l := setup(t)

		_, err := l.Transfer(context.Background(), "alice", "bob", 20000, "", "")
		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)

		sender, err := l.GetBalance(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(15000), sender.Balance)

		recipientTxs, err := l.GetTransactions(context.Background(), "bob")
		require.NoError(t, err)
		assert.Empty(t, recipientTxs)
	})

	t.Run("Self Transfer", func(t *testing.T) {
		l := setup(t)

		_, err := l.Transfer(context.Background(), "alice", "alice", 100, "", "")

		assert.ErrorIs(t, err, ledger.ErrSelfTransfer)
	})

	t.Run("Unknown Sender", func(t *testing.T) {
		l := setup(t)

		_, err := l.Transfer(context.Background(), "ghost", "bob", 100, "", "")

		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
	})

	t.Run("Unknown Recipient", func(t *testing.T) {
		l := setup(t)

		_, err := l.Transfer(context.Background(), "alice", "ghost", 100, "", "")

		assert.ErrorIs(t, err, ledger.ErrRecipientNotFound)
	})
}

func TestIdempotency(t *testing.T) {
	t.Run("Deposit Replay", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")

		first, err := l.Deposit(context.Background(), "alice", 1000, "", "key-1")
		require.NoError(t, err)
		second, err := l.Deposit(context.Background(), "alice", 1000, "", "key-1")
		require.NoError(t, err)

		assert.False(t, first.Duplicate)
		assert.True(t, second.Duplicate)
		assert.Equal(t, first.Transaction.Id, second.Transaction.Id)
		assert.Equal(t, int64(1000), second.Account.Balance)

		transactions, err := l.GetTransactions(context.Background(), "alice")
		require.NoError(t, err)
		assert.Len(t, transactions, 1)
	})

	t.Run("Transfer Replay", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")
		createAccount(t, l, "bob")
		_, err := l.Deposit(context.Background(), "alice", 5000, "", "")
		require.NoError(t, err)

		first, err := l.Transfer(context.Background(), "alice", "bob", 2000, "", "key-t")
		require.NoError(t, err)
		second, err := l.Transfer(context.Background(), "alice", "bob", 2000, "", "key-t")
		require.NoError(t, err)

		assert.False(t, first.Duplicate)
		assert.True(t, second.Duplicate)
		assert.Equal(t, int64(3000), second.Sender.Balance)
		assert.Equal(t, int64(2000), second.Recipient.Balance)
	})

	t.Run("Reused Key With Different Amount", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")

		_, err := l.Deposit(context.Background(), "alice", 1000, "", "key-1")
		require.NoError(t, err)

		_, err = l.Deposit(context.Background(), "alice", 2000, "", "key-1")
		assert.ErrorIs(t, err, ledger.ErrIdempotencyConflict)

		account, err := l.GetBalance(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(1000), account.Balance)
	})

	t.Run("Reused Key Across Operation Types", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")

		_, err := l.Deposit(context.Background(), "alice", 1000, "", "key-1")
		require.NoError(t, err)

		_, err = l.Withdraw(context.Background(), "alice", 1000, "", "key-1")
		assert.ErrorIs(t, err, ledger.ErrIdempotencyConflict)
	})

	t.Run("Reused Transfer Key With Different Recipient", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")
		createAccount(t, l, "bob")
		createAccount(t, l, "carol")
		_, err := l.Deposit(context.Background(), "alice", 5000, "", "")
		require.NoError(t, err)

		_, err = l.Transfer(context.Background(), "alice", "bob", 2000, "", "key-t")
		require.NoError(t, err)

		_, err = l.Transfer(context.Background(), "alice", "carol", 2000, "", "key-t")
		assert.ErrorIs(t, err, ledger.ErrIdempotencyConflict)

		carol, err := l.GetBalance(context.Background(), "carol")
		require.NoError(t, err)
		assert.Equal(t, int64(0), carol.Balance)
		balanceEqualsHistory(t, l, "alice")
	})
}

func TestGetTransactions(t *testing.T) {
	t.Run("Empty History", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")

		transactions, err := l.GetTransactions(context.Background(), "alice")

		require.NoError(t, err)
		assert.NotNil(t, transactions)
		assert.Empty(t, transactions)
	})

	t.Run("Unknown User", func(t *testing.T) {
		l, _ := newLedger(t)

		_, err := l.GetTransactions(context.Background(), "ghost")

		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
	})
}

func TestSpendingSummary(t *testing.T) {
	t.Run("No Data", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")

		summary, err := l.SpendingSummary(context.Background(), "alice")

		require.NoError(t, err)
		assert.False(t, summary.HasData)
		assert.Empty(t, summary.Category)
	})

	t.Run("Dominant Category", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")
		_, err := l.Deposit(context.Background(), "alice", 100000, "", "")
		require.NoError(t, err)
		_, err = l.Withdraw(context.Background(), "alice", 4000, "pizza night", "")
		require.NoError(t, err)
		_, err = l.Withdraw(context.Background(), "alice", 1000, "bus ticket", "")
		require.NoError(t, err)

		summary, err := l.SpendingSummary(context.Background(), "alice")

		require.NoError(t, err)
		assert.True(t, summary.HasData)
		assert.Equal(t, "food", summary.Category)
		assert.Equal(t, int64(4000), summary.Total)
		assert.NotEmpty(t, summary.Tip)
	})

	t.Run("Deposits Are Not Spending", func(t *testing.T) {
		l, _ := newLedger(t)
		createAccount(t, l, "alice")
		_, err := l.Deposit(context.Background(), "alice", 5000, "grocery refund", "")
		require.NoError(t, err)

		summary, err := l.SpendingSummary(context.Background(), "alice")

		require.NoError(t, err)
		assert.False(t, summary.HasData)
	})
}

func TestConcurrentDeposits(t *testing.T) {
	l, _ := newLedger(t)
	createAccount(t, l, "alice")

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := l.Deposit(context.Background(), "alice", 1000, "", "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	account, err := l.GetBalance(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(workers*1000), account.Balance)
	balanceEqualsHistory(t, l, "alice")
}

func TestConcurrentOppositeTransfers(t *testing.T) {
	l, _ := newLedger(t)
	createAccount(t, l, "alice")
	createAccount(t, l, "bob")
	_, err := l.Deposit(context.Background(), "alice", 100000, "", "")
	require.NoError(t, err)
	_, err = l.Deposit(context.Background(), "bob", 100000, "", "")
	require.NoError(t, err)

	const rounds = 25
	var wg sync.WaitGroup
	wg.Add(2 * rounds)
	for i := 0; i < rounds; i++ {
		go func() {
			defer wg.Done()
			_, err := l.Transfer(context.Background(), "alice", "bob", 100, "", "")
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := l.Transfer(context.Background(), "bob", "alice", 100, "", "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	alice, err := l.GetBalance(context.Background(), "alice")
	require.NoError(t, err)
	bob, err := l.GetBalance(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), alice.Balance)
	assert.Equal(t, int64(100000), bob.Balance)
	balanceEqualsHistory(t, l, "alice")
	balanceEqualsHistory(t, l, "bob")
}
