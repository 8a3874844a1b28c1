package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the stored lifecycle state of an invoice. Overdue is
// never stored; it is derived from the due date on read.
type InvoiceStatus string

const (
	InvoiceStatusActive InvoiceStatus = "Active"
	InvoiceStatusPaid   InvoiceStatus = "Paid"
	InvoiceStatusVoid   InvoiceStatus = "Void"
)

// Invoice is a billing aggregate optionally linked to a sale.
type Invoice struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	IssueDate      time.Time
	DueDate        time.Time
	ID             string
	InvoiceNumber  string
	SaleID         *string
	CustomerID     string
	Status         InvoiceStatus
	VoidReason     string
	SubTotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	PaidAmount     decimal.Decimal
	BalanceAmount  decimal.Decimal
}

// Validate checks both balance identities on the invoice.
func (inv *Invoice) Validate() error {
	wantTotal := inv.SubTotal.Add(inv.TaxAmount).Sub(inv.DiscountAmount)
	if !inv.TotalAmount.Equal(wantTotal) {
		return fmt.Errorf("%w: total %s, expected %s", ErrInvalidDocumentTotals, inv.TotalAmount, wantTotal)
	}
	wantBalance := inv.TotalAmount.Sub(inv.PaidAmount)
	if !inv.BalanceAmount.Equal(wantBalance) {
		return fmt.Errorf("%w: balance %s, expected %s", ErrInvalidDocumentTotals, inv.BalanceAmount, wantBalance)
	}
	return nil
}

// ApplyPayment records a payment against the invoice, transitioning to Paid
// once the balance reaches zero or below.
func (inv *Invoice) ApplyPayment(amount decimal.Decimal) error {
	if inv.Status != InvoiceStatusActive {
		return fmt.Errorf("%w: cannot pay a %s invoice", ErrInvalidStatusTransition, inv.Status)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	inv.PaidAmount = inv.PaidAmount.Add(amount)
	inv.BalanceAmount = inv.TotalAmount.Sub(inv.PaidAmount)
	if inv.BalanceAmount.LessThanOrEqual(decimal.Zero) {
		inv.Status = InvoiceStatusPaid
	}
	return nil
}

// Void transitions Active -> Void. A reason is mandatory.
func (inv *Invoice) Void(reason string) error {
	if inv.Status != InvoiceStatusActive {
		return fmt.Errorf("%w: invoice %s -> %s", ErrInvalidStatusTransition, inv.Status, InvoiceStatusVoid)
	}
	if strings.TrimSpace(reason) == "" {
		return ErrVoidReasonRequired
	}
	inv.Status = InvoiceStatusVoid
	inv.VoidReason = reason
	return nil
}

// IsOverdue reports whether the invoice is past due and still active.
func (inv *Invoice) IsOverdue(now time.Time) bool {
	return inv.Status == InvoiceStatusActive && inv.DueDate.Before(now)
}

// IsFullyPaid reports whether nothing remains outstanding.
func (inv *Invoice) IsFullyPaid() bool {
	return inv.BalanceAmount.LessThanOrEqual(decimal.Zero)
}
