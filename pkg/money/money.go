// Package money provides functionality for handling monetary values.
//
// It is a value object that represents an exact decimal amount.
// Invariants:
//   - Amounts are stored as arbitrary precision decimals, never as binary floats.
//   - Arithmetic never rounds: adding or subtracting is exact.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when a textual amount cannot be parsed.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrEmptyAmount is returned when an empty string is parsed as an amount.
	ErrEmptyAmount = errors.New("amount is empty")
)

// Money represents an exact decimal monetary value.
// The zero value is a valid amount of zero.
type Money struct {
	amount decimal.Decimal
}

// Zero returns a Money with a zero amount.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// New creates a Money from a float64. The float is converted using its
// shortest decimal representation, so New(0.1) is exactly 0.1.
func New(amount float64) Money {
	return Money{amount: decimal.NewFromFloat(amount)}
}

// NewFromDecimal wraps an existing decimal value.
func NewFromDecimal(d decimal.Decimal) Money {
	return Money{amount: d}
}

// Parse creates a Money from its textual form (e.g. "100", "50.25", "-3.5").
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrEmptyAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Money{amount: d}, nil
}

// Must parses s and panics if it is not a valid amount.
// Intended for tests and constant setup only.
func Must(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("money.Must(%q): %v", s, err))
	}
	return m
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64. Precision may be lost.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// Add returns the exact sum of m and other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Subtract returns the exact difference m - other.
// The result can be negative if other is larger than m.
func (m Money) Subtract(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Negate returns -m.
func (m Money) Negate() Money {
	return Money{amount: m.amount.Neg()}
}

// Abs returns the absolute value of m.
func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs()}
}

// Equals reports whether both amounts are numerically equal (1.0 == 1.00).
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// String renders the amount with trailing zeros trimmed but at least one
// fractional digit: 100 -> "100.0", 50.50 -> "50.5", 0.25 -> "0.25".
func (m Money) String() string {
	if m.amount.Equal(m.amount.Truncate(0)) {
		return m.amount.StringFixed(1)
	}
	return m.amount.String()
}
