package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chamroeun/posledger/internal/domain"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PostingResponse acknowledges a completed posting.
type PostingResponse struct {
	Status string `json:"status"`
}

// EntryResponse represents one ledger entry leg in API responses.
type EntryResponse struct {
	ID              string          `json:"id"`
	EntryNumber     string          `json:"entry_number"`
	EntryDate       time.Time       `json:"entry_date"`
	AccountID       string          `json:"account_id"`
	AccountName     string          `json:"account_name"`
	AccountType     string          `json:"account_type"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Book            string          `json:"book"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.GeneralLedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:              e.ID,
		EntryNumber:     e.EntryNumber,
		EntryDate:       e.EntryDate,
		AccountID:       e.AccountID,
		AccountName:     e.AccountName,
		AccountType:     string(e.AccountType),
		Debit:           e.Debit,
		Credit:          e.Credit,
		Description:     e.Description,
		ReferenceNumber: e.ReferenceNumber,
		Book:            string(e.Book),
		CreatedBy:       e.CreatedBy,
		CreatedAt:       e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.GeneralLedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// AccountResponse represents a chart-of-accounts entry in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.FinancialAccount) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		Category:  a.Category,
		Type:      string(a.Type),
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.FinancialAccount) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ConversionResponse represents a currency conversion result.
type ConversionResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Display   string          `json:"display"`
	Rate      decimal.Decimal `json:"rate"`
}

// DetectResponse represents a currency detection result.
type DetectResponse struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// ChangeResponse represents a change calculation result.
type ChangeResponse struct {
	Change   decimal.Decimal `json:"change"`
	Currency string          `json:"currency"`
	Display  string          `json:"display"`
}

// DocumentNumberResponse represents an allocated document number.
type DocumentNumberResponse struct {
	Number string `json:"number"`
}

// ConsistencyResponse represents a ledger consistency check result.
type ConsistencyResponse struct {
	Consistent bool `json:"consistent"`
}
