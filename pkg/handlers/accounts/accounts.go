package accounts

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dlaird/pocketbank/pkg/api"
	"github.com/dlaird/pocketbank/pkg/handlers/respond"
	"github.com/dlaird/pocketbank/pkg/ledger"
	"github.com/dlaird/pocketbank/pkg/mapping"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// AccountsHandler holds the dependencies for account-related handlers.
type AccountsHandler struct {
	Ledger ledger.AccountService
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(l ledger.AccountService) *AccountsHandler {
	return &AccountsHandler{Ledger: l}
}

// CreateUser handles POST /api/create-user.
func (h *AccountsHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req api.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	profile := ledger.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	account, err := h.Ledger.CreateAccount(r.Context(), req.Username, req.Pin, profile)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, api.CreateUserResponse{
		Message:  "User created successfully",
		Username: account.Username,
	})
}

// Authenticate handles POST /api/authenticate.
func (h *AccountsHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req api.AuthenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := h.Ledger.Authenticate(r.Context(), req.Username, req.Pin); err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, api.MessageResponse{
		Message: fmt.Sprintf("Welcome, %s!", req.Username),
	})
}

// GetBalance handles GET /api/balance/{username}.
func (h *AccountsHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	account, err := h.Ledger.GetBalance(r.Context(), username)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToBalanceResponse(account))
}

// ListUsers handles GET /api/users, returning every username with its balance.
func (h *AccountsHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Ledger.ListAccounts(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	balances := make(map[string]decimal.Decimal, len(accounts))
	for i := range accounts {
		balances[accounts[i].Username] = mapping.FromCents(accounts[i].Balance)
	}
	respond.JSON(w, http.StatusOK, balances)
}
