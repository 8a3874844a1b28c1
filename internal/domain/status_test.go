package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSaleTransitions(t *testing.T) {
	t.Run("pending to completed", func(t *testing.T) {
		s := &Sale{Status: SaleStatusPending}
		if err := s.Complete(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Status != SaleStatusCompleted {
			t.Errorf("expected Completed, got %s", s.Status)
		}
	})

	t.Run("pending to cancelled", func(t *testing.T) {
		s := &Sale{Status: SaleStatusPending}
		if err := s.Cancel(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("completed to returned", func(t *testing.T) {
		s := &Sale{Status: SaleStatusCompleted}
		if err := s.Return(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("cancelled sale cannot complete", func(t *testing.T) {
		s := &Sale{Status: SaleStatusCancelled}
		if err := s.Complete(); !errors.Is(err, ErrInvalidStatusTransition) {
			t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
		}
	})

	t.Run("pending sale cannot return", func(t *testing.T) {
		s := &Sale{Status: SaleStatusPending}
		if err := s.Return(); !errors.Is(err, ErrInvalidStatusTransition) {
			t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
		}
	})
}

func TestInvoiceApplyPayment(t *testing.T) {
	newInvoice := func() *Invoice {
		return &Invoice{
			Status:        InvoiceStatusActive,
			TotalAmount:   decimal.NewFromInt(100),
			PaidAmount:    decimal.Zero,
			BalanceAmount: decimal.NewFromInt(100),
		}
	}

	t.Run("partial payment keeps invoice active", func(t *testing.T) {
		inv := newInvoice()
		if err := inv.ApplyPayment(decimal.NewFromInt(40)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Status != InvoiceStatusActive {
			t.Errorf("expected Active, got %s", inv.Status)
		}
		if !inv.BalanceAmount.Equal(decimal.NewFromInt(60)) {
			t.Errorf("expected balance 60, got %s", inv.BalanceAmount)
		}
	})

	t.Run("full payment marks paid", func(t *testing.T) {
		inv := newInvoice()
		if err := inv.ApplyPayment(decimal.NewFromInt(100)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Status != InvoiceStatusPaid {
			t.Errorf("expected Paid, got %s", inv.Status)
		}
		if !inv.IsFullyPaid() {
			t.Error("expected IsFullyPaid")
		}
	})

	t.Run("overpayment marks paid with negative balance", func(t *testing.T) {
		inv := newInvoice()
		if err := inv.ApplyPayment(decimal.NewFromInt(120)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Status != InvoiceStatusPaid {
			t.Errorf("expected Paid, got %s", inv.Status)
		}
	})

	t.Run("void invoice rejects payment", func(t *testing.T) {
		inv := newInvoice()
		if err := inv.Void("duplicate billing"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := inv.ApplyPayment(decimal.NewFromInt(10)); !errors.Is(err, ErrInvalidStatusTransition) {
			t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
		}
	})

	t.Run("non-positive payment rejected", func(t *testing.T) {
		inv := newInvoice()
		if err := inv.ApplyPayment(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestInvoiceVoid(t *testing.T) {
	t.Run("requires reason", func(t *testing.T) {
		inv := &Invoice{Status: InvoiceStatusActive}
		if err := inv.Void("  "); !errors.Is(err, ErrVoidReasonRequired) {
			t.Errorf("expected ErrVoidReasonRequired, got %v", err)
		}
	})

	t.Run("void is terminal", func(t *testing.T) {
		inv := &Invoice{Status: InvoiceStatusActive}
		if err := inv.Void("customer refused delivery"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := inv.Void("again"); !errors.Is(err, ErrInvalidStatusTransition) {
			t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
		}
	})
}

func TestInvoiceIsOverdue(t *testing.T) {
	now := time.Date(2025, 10, 26, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status InvoiceStatus
		due    time.Time
		want   bool
	}{
		{"past due and active", InvoiceStatusActive, now.Add(-24 * time.Hour), true},
		{"not yet due", InvoiceStatusActive, now.Add(24 * time.Hour), false},
		{"past due but paid", InvoiceStatusPaid, now.Add(-24 * time.Hour), false},
		{"past due but void", InvoiceStatusVoid, now.Add(-24 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Invoice{Status: tt.status, DueDate: tt.due}
			if got := inv.IsOverdue(now); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPaymentTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    PaymentStatus
		apply   func(*Payment) error
		wantErr bool
		want    PaymentStatus
	}{
		{"pending completes", PaymentStatusPending, (*Payment).Complete, false, PaymentStatusCompleted},
		{"pending fails", PaymentStatusPending, (*Payment).Fail, false, PaymentStatusFailed},
		{"completed refunds", PaymentStatusCompleted, (*Payment).Refund, false, PaymentStatusRefunded},
		{"completed cancels", PaymentStatusCompleted, (*Payment).Cancel, false, PaymentStatusCancelled},
		{"pending cannot refund", PaymentStatusPending, (*Payment).Refund, true, PaymentStatusPending},
		{"failed cannot complete", PaymentStatusFailed, (*Payment).Complete, true, PaymentStatusFailed},
		{"refunded is terminal", PaymentStatusRefunded, (*Payment).Cancel, true, PaymentStatusRefunded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Payment{Status: tt.from}
			err := tt.apply(p)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStatusTransition) {
					t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Status != tt.want {
				t.Errorf("expected %s, got %s", tt.want, p.Status)
			}
		})
	}
}

func TestPaymentLink(t *testing.T) {
	now := time.Date(2025, 10, 26, 12, 0, 0, 0, time.UTC)

	t.Run("expiry is derived", func(t *testing.T) {
		l := &PaymentLink{Status: PaymentLinkStatusActive, ExpiryDate: now.Add(-time.Hour)}
		if !l.IsExpired(now) {
			t.Error("expected expired")
		}
		if err := l.Expire(now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if l.Status != PaymentLinkStatusExpired {
			t.Errorf("expected Expired, got %s", l.Status)
		}
	})

	t.Run("paid link never reports expired", func(t *testing.T) {
		l := &PaymentLink{Status: PaymentLinkStatusActive, ExpiryDate: now.Add(time.Hour)}
		if err := l.MarkPaid(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if l.IsExpired(now.Add(48 * time.Hour)) {
			t.Error("paid link must not expire")
		}
	})

	t.Run("cancelled link cannot be paid", func(t *testing.T) {
		l := &PaymentLink{Status: PaymentLinkStatusActive, ExpiryDate: now.Add(time.Hour)}
		if err := l.Cancel(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := l.MarkPaid(); !errors.Is(err, ErrInvalidStatusTransition) {
			t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
		}
	})
}

func TestPaymentIsCashIn(t *testing.T) {
	invoiceID := "inv-1"
	saleID := "sale-1"

	if !(&Payment{InvoiceID: &invoiceID}).IsCashIn() {
		t.Error("invoice-linked payment should be cash-in")
	}
	if !(&Payment{SaleID: &saleID}).IsCashIn() {
		t.Error("sale-linked payment should be cash-in")
	}
	if (&Payment{}).IsCashIn() {
		t.Error("unlinked payment should be cash-out")
	}
}
