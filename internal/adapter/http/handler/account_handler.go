package handler

import (
	"net/http"

	"github.com/chamroeun/posledger/internal/adapter/http/dto"
	"github.com/chamroeun/posledger/internal/usecase"
)

// AccountHandler handles chart-of-accounts requests.
type AccountHandler struct {
	accountUC *usecase.AccountUseCase
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// List returns the full chart of accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountUC.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// GetByName returns one account by chart name.
func (h *AccountHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing account name", "")
		return
	}

	account, err := h.accountUC.GetByName(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusNotFound, "account not found", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
