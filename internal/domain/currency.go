package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultDetectThreshold is the magnitude above which a bare number is
// assumed to be KHR. The comparison is strictly greater-than: 1000.00 is
// still USD, 1000.01 is KHR.
var DefaultDetectThreshold = decimal.NewFromInt(1000)

// Converter converts amounts between USD and KHR at a rate fixed when the
// register opens. Intermediate results are kept at full decimal precision;
// rounding happens only when an amount is turned into Money for display.
type Converter struct {
	khrPerUSD decimal.Decimal
	threshold decimal.Decimal
}

// NewConverter creates a Converter with the given KHR-per-USD rate.
func NewConverter(khrPerUSD decimal.Decimal) (*Converter, error) {
	if khrPerUSD.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", ErrInvalidAmount)
	}
	return &Converter{khrPerUSD: khrPerUSD, threshold: DefaultDetectThreshold}, nil
}

// Rate returns the configured KHR-per-USD rate.
func (c *Converter) Rate() decimal.Decimal { return c.khrPerUSD }

// Convert converts amount between the two currencies. Identity when the
// currencies match. No rounding is applied.
func (c *Converter) Convert(amount decimal.Decimal, from, to Currency) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	switch {
	case from == USD && to == KHR:
		return amount.Mul(c.khrPerUSD), nil
	case from == KHR && to == USD:
		return amount.Div(c.khrPerUSD), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %s -> %s", ErrUnknownCurrency, from, to)
	}
}

// DetectCurrency guesses the currency of an untagged amount. Anything above
// the threshold is taken to be KHR. The heuristic misreads large USD amounts
// and small KHR amounts; it matches what cashiers key in at this register.
func (c *Converter) DetectCurrency(amount decimal.Decimal) Currency {
	if amount.GreaterThan(c.threshold) {
		return KHR
	}
	return USD
}

// CalculateChange converts total into the currency the customer paid in,
// subtracts, and returns the change in the preferred change currency.
// The total's own currency is inferred with DetectCurrency.
func (c *Converter) CalculateChange(total, paid decimal.Decimal, paidCurrency, changeCurrency Currency) (decimal.Decimal, error) {
	totalInPaid, err := c.Convert(total, c.DetectCurrency(total), paidCurrency)
	if err != nil {
		return decimal.Zero, err
	}

	change := paid.Sub(totalInPaid)
	if change.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: short by %s %s", ErrInsufficientPayment, change.Neg(), paidCurrency)
	}

	return c.Convert(change, paidCurrency, changeCurrency)
}

// ValidatePayment reports whether paid covers total after the same
// conversion path as CalculateChange. It never fails.
func (c *Converter) ValidatePayment(total, paid decimal.Decimal, paidCurrency Currency) bool {
	totalInPaid, err := c.Convert(total, c.DetectCurrency(total), paidCurrency)
	if err != nil {
		return false
	}
	return paid.GreaterThanOrEqual(totalInPaid)
}
