package dto

import (
	"github.com/shopspring/decimal"

	"github.com/chamroeun/posledger/internal/domain"
)

// PostDocumentRequest carries the acting user for a posting. The document
// itself is addressed in the URL.
type PostDocumentRequest struct {
	UserID string `json:"user_id"`
}

// PostJournalRequest represents a manual general journal entry.
type PostJournalRequest struct {
	AccountName string          `json:"account_name"`
	AccountType string          `json:"account_type"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	UserID      string          `json:"user_id"`
}

// ConvertRequest represents a currency conversion.
type ConvertRequest struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
}

// ChangeRequest represents a change calculation at the register.
type ChangeRequest struct {
	Total          decimal.Decimal `json:"total"`
	Paid           decimal.Decimal `json:"paid"`
	PaidCurrency   string          `json:"paid_currency"`
	ChangeCurrency string          `json:"change_currency"`
}

// AllocateNumberRequest represents a document number allocation.
type AllocateNumberRequest struct {
	Kind string `json:"kind"`
	Date string `json:"date,omitempty"` // yyyy-mm-dd, defaults to today
}

// ParseCurrencies resolves the request's currency codes.
func (r *ConvertRequest) ParseCurrencies() (from, to domain.Currency, err error) {
	from, err = domain.ParseCurrency(r.From)
	if err != nil {
		return "", "", err
	}
	to, err = domain.ParseCurrency(r.To)
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}
