package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies a chart-of-accounts entry.
type AccountType string

const (
	AccountTypeAsset     AccountType = "Asset"
	AccountTypeLiability AccountType = "Liability"
	AccountTypeEquity    AccountType = "Equity"
	AccountTypeRevenue   AccountType = "Revenue"
	AccountTypeExpense   AccountType = "Expense"
)

// BookOfEntry groups ledger entries by the workflow that produced them.
type BookOfEntry string

const (
	SalesDayBook     BookOfEntry = "SalesDayBook"
	PurchasesDayBook BookOfEntry = "PurchasesDayBook"
	CashBook         BookOfEntry = "CashBook"
	GeneralJournal   BookOfEntry = "GeneralJournal"
)

// Well-known account names used by the posting rule table. The chart of
// accounts migration seeds them; renaming one without updating the seed
// breaks posting at startup, which is the intended failure mode.
const (
	AccountCash               = "Cash"
	AccountSalesRevenue       = "Sales Revenue"
	AccountCostOfGoodsSold    = "Cost of Goods Sold"
	AccountInventory          = "Inventory"
	AccountAccountsPayable    = "Accounts Payable"
	AccountAccountsReceivable = "Accounts Receivable"
)

// GeneralLedgerEntry is one leg of a double-entry record. Entries are
// immutable once persisted; corrections are made with offsetting entries.
type GeneralLedgerEntry struct {
	CreatedAt       time.Time
	EntryDate       time.Time
	ID              string
	EntryNumber     string
	AccountID       string
	AccountName     string
	AccountType     AccountType
	Description     string
	ReferenceNumber string
	Book            BookOfEntry
	SaleID          *string
	PurchaseID      *string
	PaymentID       *string
	CreatedBy       string
	Debit           decimal.Decimal
	Credit          decimal.Decimal
}

// Validate checks that exactly one side is set and both are non-negative.
func (e *GeneralLedgerEntry) Validate() error {
	if e.Debit.IsNegative() || e.Credit.IsNegative() {
		return ErrInvalidEntry
	}
	if e.Debit.IsZero() == e.Credit.IsZero() {
		return ErrInvalidEntry
	}
	return nil
}

// SumEntries returns total debits and total credits across entries.
func SumEntries(entries []*GeneralLedgerEntry) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, e := range entries {
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}
	return debits, credits
}

// Balanced reports whether the entries net to zero.
func Balanced(entries []*GeneralLedgerEntry) bool {
	debits, credits := SumEntries(entries)
	return debits.Equal(credits)
}
