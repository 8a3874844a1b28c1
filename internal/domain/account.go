package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FinancialAccount is a chart-of-accounts entry. The chart is seeded once
// by migration; the engine only reads it.
type FinancialAccount struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ID        string
	Code      string
	Name      string
	Category  string
	Type      AccountType
	Balance   decimal.Decimal
}

// AccountIndex resolves the rule table's account names to stable account
// IDs. Posting fails fast on a name the chart does not carry, instead of
// silently writing an entry joined to nothing.
type AccountIndex struct {
	byName map[string]*FinancialAccount
}

// NewAccountIndex builds an index over the chart of accounts.
func NewAccountIndex(accounts []*FinancialAccount) *AccountIndex {
	byName := make(map[string]*FinancialAccount, len(accounts))
	for _, a := range accounts {
		byName[a.Name] = a
	}
	return &AccountIndex{byName: byName}
}

// Resolve returns the account carrying the given name.
func (idx *AccountIndex) Resolve(name string) (*FinancialAccount, error) {
	a, ok := idx.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAccountNotFound, name)
	}
	return a, nil
}

// Len returns the number of indexed accounts.
func (idx *AccountIndex) Len() int { return len(idx.byName) }

// BalanceDelta returns the running-balance effect of one entry leg on an
// account of the given type. Debit-normal accounts (Asset, Expense) grow
// with debits; the others grow with credits.
func BalanceDelta(t AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return debit.Sub(credit)
	default:
		return credit.Sub(debit)
	}
}
