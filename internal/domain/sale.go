package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus is the lifecycle state of a sale.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "Pending"
	SaleStatusCompleted SaleStatus = "Completed"
	SaleStatusCancelled SaleStatus = "Cancelled"
	SaleStatusReturned  SaleStatus = "Returned"
)

// Sale is a checkout-level aggregate. Monetary fields are mutated only by
// the posting coordinator once ledger posting begins.
type Sale struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	SaleDate       time.Time
	ID             string
	SaleNumber     string
	CustomerID     *string
	CashierID      string
	Status         SaleStatus
	SubTotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	PaidAmount     decimal.Decimal
	ChangeAmount   decimal.Decimal
}

// SaleLineItem is one line of a sale, joined with the product's cost price
// so cost of goods sold can be derived.
type SaleLineItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	CostPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Validate checks the total identity: Total = SubTotal + Tax - Discount.
func (s *Sale) Validate() error {
	want := s.SubTotal.Add(s.TaxAmount).Sub(s.DiscountAmount)
	if !s.TotalAmount.Equal(want) {
		return fmt.Errorf("%w: total %s, expected %s", ErrInvalidDocumentTotals, s.TotalAmount, want)
	}
	return nil
}

// Complete transitions Pending -> Completed.
func (s *Sale) Complete() error {
	if s.Status != SaleStatusPending {
		return fmt.Errorf("%w: sale %s -> %s", ErrInvalidStatusTransition, s.Status, SaleStatusCompleted)
	}
	s.Status = SaleStatusCompleted
	return nil
}

// Cancel transitions Pending -> Cancelled.
func (s *Sale) Cancel() error {
	if s.Status != SaleStatusPending {
		return fmt.Errorf("%w: sale %s -> %s", ErrInvalidStatusTransition, s.Status, SaleStatusCancelled)
	}
	s.Status = SaleStatusCancelled
	return nil
}

// Return transitions Completed -> Returned. Historical ledger entries stay
// untouched; the posting coordinator adds offsetting entries.
func (s *Sale) Return() error {
	if s.Status != SaleStatusCompleted {
		return fmt.Errorf("%w: sale %s -> %s", ErrInvalidStatusTransition, s.Status, SaleStatusReturned)
	}
	s.Status = SaleStatusReturned
	return nil
}

// CostOfGoodsSold sums quantity x cost price over line items.
func CostOfGoodsSold(lines []*SaleLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.CostPrice.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total
}
