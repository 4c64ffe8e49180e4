package transactions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dlaird/pocketbank/pkg/api"
	"github.com/dlaird/pocketbank/pkg/handlers/respond"
	"github.com/dlaird/pocketbank/pkg/ledger"
	"github.com/dlaird/pocketbank/pkg/mapping"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// defaultHistoryLimit caps the transaction listing when the client does not
// ask for a specific page size.
const defaultHistoryLimit = 10

// TransactionsHandler holds the dependencies for transaction-related handlers.
type TransactionsHandler struct {
	Ledger ledger.TransactionService
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(l ledger.TransactionService) *TransactionsHandler {
	return &TransactionsHandler{Ledger: l}
}

// Deposit handles POST /api/deposit.
func (h *TransactionsHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "Deposit successful", h.Ledger.Deposit)
}

// Withdraw handles POST /api/withdraw.
func (h *TransactionsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "Withdrawal successful", h.Ledger.Withdraw)
}

// mutate implements the shared deposit/withdraw request flow.
func (h *TransactionsHandler) mutate(
	w http.ResponseWriter,
	r *http.Request,
	message string,
	apply func(ctx context.Context, username string, amount int64, note, idempotencyKey string) (*ledger.MutationResult, error),
) {
	var req api.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	cents, err := mapping.ToCents(req.Amount)
	if err != nil {
		respond.Error(w, err)
		return
	}

	result, err := apply(r.Context(), req.Username, cents, req.Note, req.IdempotencyKey)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, api.MutationResponse{
		Message:       message,
		Username:      result.Account.Username,
		TransactionId: result.Transaction.Id,
		NewBalance:    mapping.FromCents(result.Account.Balance),
		Duplicate:     result.Duplicate,
	})
}

// Transfer handles POST /api/transfer.
func (h *TransactionsHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req api.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	cents, err := mapping.ToCents(req.Amount)
	if err != nil {
		respond.Error(w, err)
		return
	}

	result, err := h.Ledger.Transfer(r.Context(), req.FromUser, req.ToUser, cents, req.Note, req.IdempotencyKey)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, api.TransferResponse{
		Message: "Transfer successful",
		Transaction: api.TransferDetails{
			TransactionId: result.OutLeg.Id,
			FromUser:      result.Sender.Username,
			ToUser:        result.Recipient.Username,
			Amount:        mapping.FromCents(result.OutLeg.Amount),
			Note:          result.OutLeg.Note,
		},
		UpdatedBalances: map[string]decimal.Decimal{
			result.Sender.Username:    mapping.FromCents(result.Sender.Balance),
			result.Recipient.Username: mapping.FromCents(result.Recipient.Balance),
		},
		Duplicate: result.Duplicate,
	})
}

// ListTransactions handles GET /api/transactions/{username}. History comes
// back newest first, truncated to the limit query parameter.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	transactions, err := h.Ledger.GetTransactions(r.Context(), username)
	if err != nil {
		respond.Error(w, err)
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respond.Detail(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	converted := mapping.ToApiTransactions(transactions)
	if len(converted) > limit {
		converted = converted[:limit]
	}

	respond.JSON(w, http.StatusOK, api.TransactionsResponse{Transactions: converted})
}
