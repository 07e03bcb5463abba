package kernel

import (
	"fmt"

	"procserve/internal/pkg/errs"
)

// Money is a value object representing a non-negative dollar amount stored as
// integer cents. All pricing arithmetic in the domain goes through Money so
// that rounding happens exactly once per operation and never drifts between
// the live preview and the authoritative server-side computation.
//
// The zero value is a valid zero amount. Money is immutable; arithmetic
// methods return new values.
type Money struct {
	cents int64
}

// NewMoneyFromCents creates a Money amount from integer cents.
// Negative amounts are rejected: the domain has no concept of a negative
// price or fee.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money amount", fmt.Errorf("%d cents is negative", cents))
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromDollars creates a Money amount from a decimal dollar value,
// rounding half-up to cents. Used at the API boundary where amounts arrive
// as decimal numbers.
func NewMoneyFromDollars(dollars float64) (Money, error) {
	if dollars < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money amount", fmt.Errorf("%.2f is negative", dollars))
	}
	return Money{cents: int64(dollars*100 + 0.5)}, nil
}

// Zero returns the zero amount.
func Zero() Money {
	return Money{}
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Dollars returns the amount as a decimal dollar value for serialization.
func (m Money) Dollars() float64 {
	return float64(m.cents) / 100
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// PercentHalfUp returns the given percentage of the amount, rounded half-up
// to the nearest cent. Used for the order-level processing fee.
func (m Money) PercentHalfUp(percent int64) Money {
	raw := m.cents * percent
	return Money{cents: (raw + 50) / 100}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsEqual reports whether two amounts are equal.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String renders the amount as a plain decimal, e.g. "154.50".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
