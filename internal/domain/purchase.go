package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Purchase records stock bought from a supplier. A fully paid purchase
// credits Cash; anything less credits Accounts Payable.
type Purchase struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	PurchaseDate   time.Time
	ID             string
	PurchaseNumber string
	SupplierID     string
	ReceivedBy     string
	SubTotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	PaidAmount     decimal.Decimal
	BalanceAmount  decimal.Decimal
}

// Validate checks both balance identities on the purchase.
func (p *Purchase) Validate() error {
	wantTotal := p.SubTotal.Add(p.TaxAmount).Sub(p.DiscountAmount)
	if !p.TotalAmount.Equal(wantTotal) {
		return fmt.Errorf("%w: total %s, expected %s", ErrInvalidDocumentTotals, p.TotalAmount, wantTotal)
	}
	wantBalance := p.TotalAmount.Sub(p.PaidAmount)
	if !p.BalanceAmount.Equal(wantBalance) {
		return fmt.Errorf("%w: balance %s, expected %s", ErrInvalidDocumentTotals, p.BalanceAmount, wantBalance)
	}
	return nil
}

// IsFullyPaid reports whether the supplier has been paid in full.
func (p *Purchase) IsFullyPaid() bool {
	return p.PaidAmount.GreaterThanOrEqual(p.TotalAmount)
}

// OutstandingAmount returns what is still owed, never below zero.
func (p *Purchase) OutstandingAmount() decimal.Decimal {
	if p.IsFullyPaid() {
		return decimal.Zero
	}
	return p.TotalAmount.Sub(p.PaidAmount)
}
