package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency identifies one of the two currencies the register operates in.
type Currency string

const (
	USD Currency = "USD"
	KHR Currency = "KHR"
)

// moneyScale is the number of fractional digits carried by Money.
// KHR has no minor unit in practice, but amounts are stored at the same
// scale so conversion never loses precision mid-calculation.
const moneyScale = 2

// Money is a fixed-point amount in hundredths, tagged with a currency.
// Arithmetic across currency tags is rejected; go through Converter instead.
type Money struct {
	units    int64
	currency Currency
}

// NewMoney builds a Money from an amount in hundredths.
func NewMoney(units int64, currency Currency) Money {
	return Money{units: units, currency: currency}
}

// NewMoneyFromDecimal builds a Money by rounding half-up to two fractional digits.
func NewMoneyFromDecimal(d decimal.Decimal, currency Currency) Money {
	return Money{units: d.Shift(moneyScale).Round(0).IntPart(), currency: currency}
}

// Units returns the amount in hundredths.
func (m Money) Units() int64 { return m.units }

// Currency returns the currency tag.
func (m Money) Currency() Currency { return m.currency }

// Decimal returns the amount as a decimal in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.units, -moneyScale)
}

// Add returns m + other. Fails on mismatched currency tags.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: %s + %s", ErrInvalidCurrencyOperation, m.currency, other.currency)
	}
	return Money{units: m.units + other.units, currency: m.currency}, nil
}

// Sub returns m - other. Fails on mismatched currency tags.
func (m Money) Sub(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrInvalidCurrencyOperation, m.currency, other.currency)
	}
	return Money{units: m.units - other.units, currency: m.currency}, nil
}

// MulQty returns the amount multiplied by an integer quantity.
// Exact at two fractional digits because the operand is integral.
func (m Money) MulQty(qty int64) Money {
	return Money{units: m.units * qty, currency: m.currency}
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, 1 if m > other.
func (m Money) Cmp(other Money) (int, error) {
	if m.currency != other.currency {
		return 0, fmt.Errorf("%w: compare %s with %s", ErrInvalidCurrencyOperation, m.currency, other.currency)
	}
	switch {
	case m.units < other.units:
		return -1, nil
	case m.units > other.units:
		return 1, nil
	default:
		return 0, nil
	}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.units == 0 }

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.units < 0 }

// Display renders the amount for receipts: "$1.50" for USD, "6000 ៛" for KHR.
// KHR is shown without fractional digits, rounded half-up.
func (m Money) Display() string {
	switch m.currency {
	case KHR:
		whole := m.Decimal().Round(0)
		return whole.String() + " ៛"
	default:
		return "$" + formatUSD(m.units)
	}
}

func formatUSD(units int64) string {
	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}
	return sign + strconv.FormatInt(units/100, 10) + "." + fmt.Sprintf("%02d", units%100)
}

// FormatAmount renders a raw decimal amount in the display convention of its
// currency without constructing a Money first.
func FormatAmount(d decimal.Decimal, currency Currency) string {
	return NewMoneyFromDecimal(d, currency).Display()
}

// ParseCurrency parses a currency code, case-insensitively.
func ParseCurrency(code string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(code))) {
	case USD:
		return USD, nil
	case KHR:
		return KHR, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
}
