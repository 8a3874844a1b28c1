package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chamroeun/posledger/internal/domain"
)

// EntryGroup is a set of entry drafts that share one entry number. The
// coordinator allocates one number per group.
type EntryGroup []*domain.GeneralLedgerEntry

// LedgerEntryFactory turns business events into balanced sets of ledger
// entry drafts per a fixed rule table. It is pure: no allocation, no I/O;
// entry numbers and row IDs are filled in by the posting coordinator.
type LedgerEntryFactory struct{}

// NewLedgerEntryFactory creates a new LedgerEntryFactory.
func NewLedgerEntryFactory() *LedgerEntryFactory {
	return &LedgerEntryFactory{}
}

// SaleEntries produces debit Cash / credit Sales Revenue for the sale
// total, plus a debit Cost of Goods Sold / credit Inventory pair under its
// own entry number when the sale consumed stock.
func (f *LedgerEntryFactory) SaleEntries(sale *domain.Sale, lines []*domain.SaleLineItem, userID string, now time.Time) []EntryGroup {
	groups := []EntryGroup{
		pair(pairSpec{
			debitAccount:  domain.AccountCash,
			debitType:     domain.AccountTypeAsset,
			creditAccount: domain.AccountSalesRevenue,
			creditType:    domain.AccountTypeRevenue,
			amount:        sale.TotalAmount,
			description:   fmt.Sprintf("Sale - %s", sale.SaleNumber),
			reference:     sale.SaleNumber,
			book:          domain.SalesDayBook,
			entryDate:     sale.SaleDate,
			saleID:        &sale.ID,
			createdBy:     userID,
			createdAt:     now,
		}),
	}

	if cogs := domain.CostOfGoodsSold(lines); cogs.IsPositive() {
		groups = append(groups, pair(pairSpec{
			debitAccount:  domain.AccountCostOfGoodsSold,
			debitType:     domain.AccountTypeExpense,
			creditAccount: domain.AccountInventory,
			creditType:    domain.AccountTypeAsset,
			amount:        cogs,
			description:   fmt.Sprintf("Cost of Goods Sold - %s", sale.SaleNumber),
			reference:     sale.SaleNumber,
			book:          domain.SalesDayBook,
			entryDate:     sale.SaleDate,
			saleID:        &sale.ID,
			createdBy:     userID,
			createdAt:     now,
		}))
	}

	return groups
}

// PurchaseEntries produces debit Inventory against Cash when the purchase
// was paid in full, otherwise against Accounts Payable.
func (f *LedgerEntryFactory) PurchaseEntries(p *domain.Purchase, userID string, now time.Time) []EntryGroup {
	creditAccount := domain.AccountAccountsPayable
	creditType := domain.AccountTypeLiability
	if p.IsFullyPaid() {
		creditAccount = domain.AccountCash
		creditType = domain.AccountTypeAsset
	}

	return []EntryGroup{
		pair(pairSpec{
			debitAccount:  domain.AccountInventory,
			debitType:     domain.AccountTypeAsset,
			creditAccount: creditAccount,
			creditType:    creditType,
			amount:        p.TotalAmount,
			description:   fmt.Sprintf("Purchase - %s", p.PurchaseNumber),
			reference:     p.PurchaseNumber,
			book:          domain.PurchasesDayBook,
			entryDate:     p.PurchaseDate,
			purchaseID:    &p.ID,
			createdBy:     userID,
			createdAt:     now,
		}),
	}
}

// PaymentEntries produces debit Cash / credit Accounts Receivable for
// cash-in payments and debit Accounts Payable / credit Cash for cash-out.
func (f *LedgerEntryFactory) PaymentEntries(pm *domain.Payment, userID string, now time.Time) []EntryGroup {
	spec := pairSpec{
		amount:      pm.Amount,
		description: fmt.Sprintf("Payment - %s", pm.PaymentReference),
		reference:   pm.PaymentReference,
		book:        domain.CashBook,
		entryDate:   pm.PaymentDate,
		paymentID:   &pm.ID,
		createdBy:   userID,
		createdAt:   now,
	}

	if pm.IsCashIn() {
		spec.debitAccount = domain.AccountCash
		spec.debitType = domain.AccountTypeAsset
		spec.creditAccount = domain.AccountAccountsReceivable
		spec.creditType = domain.AccountTypeAsset
	} else {
		spec.debitAccount = domain.AccountAccountsPayable
		spec.debitType = domain.AccountTypeLiability
		spec.creditAccount = domain.AccountCash
		spec.creditType = domain.AccountTypeAsset
	}

	return []EntryGroup{pair(spec)}
}

// JournalEntry produces a single manual entry in the general journal with a
// caller-specified account and side.
func (f *LedgerEntryFactory) JournalEntry(accountName string, accountType domain.AccountType, debit, credit decimal.Decimal, description, userID string, now time.Time) ([]EntryGroup, error) {
	entry := &domain.GeneralLedgerEntry{
		EntryDate:   now,
		AccountName: accountName,
		AccountType: accountType,
		Debit:       debit,
		Credit:      credit,
		Description: description,
		Book:        domain.GeneralJournal,
		CreatedBy:   userID,
		CreatedAt:   now,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return []EntryGroup{{entry}}, nil
}

type pairSpec struct {
	entryDate     time.Time
	createdAt     time.Time
	debitAccount  string
	creditAccount string
	description   string
	reference     string
	createdBy     string
	debitType     domain.AccountType
	creditType    domain.AccountType
	book          domain.BookOfEntry
	saleID        *string
	purchaseID    *string
	paymentID     *string
	amount        decimal.Decimal
}

// pair builds a debit leg and a credit leg of equal amount, so every group
// it returns is balanced by construction.
func pair(s pairSpec) EntryGroup {
	debit := &domain.GeneralLedgerEntry{
		EntryDate:       s.entryDate,
		AccountName:     s.debitAccount,
		AccountType:     s.debitType,
		Debit:           s.amount,
		Credit:          decimal.Zero,
		Description:     s.description,
		ReferenceNumber: s.reference,
		Book:            s.book,
		SaleID:          s.saleID,
		PurchaseID:      s.purchaseID,
		PaymentID:       s.paymentID,
		CreatedBy:       s.createdBy,
		CreatedAt:       s.createdAt,
	}

	credit := &domain.GeneralLedgerEntry{
		EntryDate:       s.entryDate,
		AccountName:     s.creditAccount,
		AccountType:     s.creditType,
		Debit:           decimal.Zero,
		Credit:          s.amount,
		Description:     s.description,
		ReferenceNumber: s.reference,
		Book:            s.book,
		SaleID:          s.saleID,
		PurchaseID:      s.purchaseID,
		PaymentID:       s.paymentID,
		CreatedBy:       s.createdBy,
		CreatedAt:       s.createdAt,
	}

	return EntryGroup{debit, credit}
}

// Flatten concatenates groups into one entry list.
func Flatten(groups []EntryGroup) []*domain.GeneralLedgerEntry {
	var entries []*domain.GeneralLedgerEntry
	for _, g := range groups {
		entries = append(entries, g...)
	}
	return entries
}
