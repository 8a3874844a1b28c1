package domain

import "errors"

var (
	// Currency errors
	ErrInvalidCurrencyOperation = errors.New("cannot combine amounts of different currencies without conversion")
	ErrInsufficientPayment      = errors.New("paid amount does not cover the total")
	ErrUnknownCurrency          = errors.New("unknown currency code")

	// Ledger errors
	ErrDuplicateDocumentNumber = errors.New("document number already allocated")
	ErrUnbalancedEntrySet      = errors.New("entry set debits do not equal credits")
	ErrPersistenceFailure      = errors.New("failed to commit ledger posting")
	ErrInvalidSequenceNumber   = errors.New("existing document number has an unparseable suffix")
	ErrInvalidEntry            = errors.New("entry must carry exactly one non-negative side")

	// Account errors
	ErrAccountNotFound = errors.New("account not found in chart of accounts")

	// Document errors
	ErrSaleNotFound            = errors.New("sale not found")
	ErrInvoiceNotFound         = errors.New("invoice not found")
	ErrPaymentNotFound         = errors.New("payment not found")
	ErrPurchaseNotFound        = errors.New("purchase not found")
	ErrInvalidStatusTransition = errors.New("status transition not allowed")
	ErrVoidReasonRequired      = errors.New("voiding an invoice requires a reason")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrInvalidDocumentTotals   = errors.New("document totals violate the balance identity")
)
