package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestGeneralLedgerEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		debit   string
		credit  string
		wantErr bool
	}{
		{"debit only", "10.00", "0", false},
		{"credit only", "0", "10.00", false},
		{"both sides set", "10.00", "10.00", true},
		{"both sides zero", "0", "0", true},
		{"negative debit", "-1.00", "0", true},
		{"negative credit", "0", "-1.00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &GeneralLedgerEntry{
				Debit:  decimal.RequireFromString(tt.debit),
				Credit: decimal.RequireFromString(tt.credit),
			}
			err := e.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidEntry) {
					t.Errorf("expected ErrInvalidEntry, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBalanced(t *testing.T) {
	entries := []*GeneralLedgerEntry{
		{Debit: decimal.NewFromInt(10), Credit: decimal.Zero},
		{Debit: decimal.Zero, Credit: decimal.NewFromInt(10)},
		{Debit: decimal.NewFromInt(6), Credit: decimal.Zero},
		{Debit: decimal.Zero, Credit: decimal.NewFromInt(6)},
	}

	if !Balanced(entries) {
		t.Error("expected balanced entry set")
	}

	entries = append(entries, &GeneralLedgerEntry{Debit: decimal.NewFromInt(1), Credit: decimal.Zero})
	if Balanced(entries) {
		t.Error("expected unbalanced entry set")
	}
}

func TestAccountIndexResolve(t *testing.T) {
	idx := NewAccountIndex([]*FinancialAccount{
		{ID: "acc-cash", Code: "1000", Name: AccountCash, Type: AccountTypeAsset},
		{ID: "acc-rev", Code: "4000", Name: AccountSalesRevenue, Type: AccountTypeRevenue},
	})

	a, err := idx.Resolve(AccountCash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != "acc-cash" {
		t.Errorf("expected acc-cash, got %s", a.ID)
	}

	if _, err := idx.Resolve("Petty Cash"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
