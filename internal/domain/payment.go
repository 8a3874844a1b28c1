package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
	PaymentStatusRefunded  PaymentStatus = "Refunded"
	PaymentStatusCancelled PaymentStatus = "Cancelled"
)

// Payment records money received or paid out. A payment linked to an
// invoice or sale is cash-in; an unlinked payment settles a supplier
// balance and is cash-out.
type Payment struct {
	CreatedAt        time.Time
	UpdatedAt        time.Time
	PaymentDate      time.Time
	ID               string
	PaymentReference string
	InvoiceID        *string
	SaleID           *string
	Method           string
	Status           PaymentStatus
	ReceivedBy       string
	Amount           decimal.Decimal
	Currency         Currency
}

// IsCashIn reports whether the payment settles a receivable.
func (p *Payment) IsCashIn() bool {
	return p.InvoiceID != nil || p.SaleID != nil
}

// Complete transitions Pending -> Completed.
func (p *Payment) Complete() error {
	return p.transition(PaymentStatusPending, PaymentStatusCompleted)
}

// Fail transitions Pending -> Failed.
func (p *Payment) Fail() error {
	return p.transition(PaymentStatusPending, PaymentStatusFailed)
}

// Refund transitions Completed -> Refunded.
func (p *Payment) Refund() error {
	return p.transition(PaymentStatusCompleted, PaymentStatusRefunded)
}

// Cancel transitions Completed -> Cancelled.
func (p *Payment) Cancel() error {
	return p.transition(PaymentStatusCompleted, PaymentStatusCancelled)
}

func (p *Payment) transition(from, to PaymentStatus) error {
	if p.Status != from {
		return fmt.Errorf("%w: payment %s -> %s", ErrInvalidStatusTransition, p.Status, to)
	}
	p.Status = to
	return nil
}

// PaymentLinkStatus is the stored state of a payment link. Expiry is
// derived from the expiry date, never written by a background job.
type PaymentLinkStatus string

const (
	PaymentLinkStatusActive    PaymentLinkStatus = "Active"
	PaymentLinkStatusPaid      PaymentLinkStatus = "Paid"
	PaymentLinkStatusExpired   PaymentLinkStatus = "Expired"
	PaymentLinkStatusCancelled PaymentLinkStatus = "Cancelled"
)

// PaymentLink is a shareable request for payment with an expiry.
type PaymentLink struct {
	CreatedAt  time.Time
	ExpiryDate time.Time
	ID         string
	Reference  string
	InvoiceID  *string
	Status     PaymentLinkStatus
	Amount     decimal.Decimal
	Currency   Currency
}

// IsExpired reports whether the link has passed its expiry while unused.
func (l *PaymentLink) IsExpired(now time.Time) bool {
	return l.Status == PaymentLinkStatusActive && now.After(l.ExpiryDate)
}

// MarkPaid transitions Active -> Paid.
func (l *PaymentLink) MarkPaid() error {
	if l.Status != PaymentLinkStatusActive {
		return fmt.Errorf("%w: payment link %s -> %s", ErrInvalidStatusTransition, l.Status, PaymentLinkStatusPaid)
	}
	l.Status = PaymentLinkStatusPaid
	return nil
}

// Cancel transitions Active -> Cancelled.
func (l *PaymentLink) Cancel() error {
	if l.Status != PaymentLinkStatusActive {
		return fmt.Errorf("%w: payment link %s -> %s", ErrInvalidStatusTransition, l.Status, PaymentLinkStatusCancelled)
	}
	l.Status = PaymentLinkStatusCancelled
	return nil
}

// Expire stores the derived Expired state once observed.
func (l *PaymentLink) Expire(now time.Time) error {
	if !l.IsExpired(now) {
		return fmt.Errorf("%w: payment link %s -> %s", ErrInvalidStatusTransition, l.Status, PaymentLinkStatusExpired)
	}
	l.Status = PaymentLinkStatusExpired
	return nil
}
