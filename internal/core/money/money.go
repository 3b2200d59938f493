// Package money implements the exact non-negative decimal value type that
// backs every balance in the bank. Arithmetic never loses precision; the
// only place digits are discarded is Display, which truncates (never
// rounds up) to two fractional digits.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// MaxFractionDigits bounds the fractional precision accepted from
// callers. Thirteen digits cover every representable API amount; anything
// finer is refused at the boundary.
const MaxFractionDigits = 13

var (
	ErrMalformed = errors.New("money: malformed amount")
	ErrNegative  = errors.New("money: negative amount")
	ErrPrecision = errors.New("money: too many fractional digits")
)

// Money is an exact non-negative decimal, stored as a big integer plus a
// scale. Addition and subtraction rescale to the larger operand scale, so
// 0.1 + 0.001 is exactly 0.101 and carries three fractional digits.
// Equivalent representations (10.5 vs 10.50) compare equal. The zero
// value is zero money.
type Money struct {
	d decimal.Decimal
}

// Zero returns zero money.
func Zero() Money {
	return Money{}
}

// FromString parses a decimal literal such as "10", "0.01" or "123.456",
// retaining the full fractional precision of the input.
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrMalformed
	}
	if d.IsNegative() {
		return Money{}, ErrNegative
	}
	if d.Exponent() < -MaxFractionDigits {
		return Money{}, ErrPrecision
	}
	return Money{d: d}, nil
}

// MustFromString is FromString for literals known to be valid, used by
// tests and fixtures.
func MustFromString(s string) Money {
	m, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns m plus o at the precision of the more precise operand.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// Sub returns m minus o. Callers must first establish m >= o via GTE;
// the balance invariant depends on it.
func (m Money) Sub(o Money) Money {
	return Money{d: m.d.Sub(o.d)}
}

// Cmp returns -1, 0 or 1 as m is less than, equal to or greater than o.
func (m Money) Cmp(o Money) int {
	return m.d.Cmp(o.d)
}

// GTE reports whether m covers o.
func (m Money) GTE(o Money) bool {
	return m.d.Cmp(o.d) >= 0
}

// IsZero reports whether m is exactly zero.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// IsPositive reports whether m is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// Display renders the externally visible form: exactly two fractional
// digits, with any finer digits truncated toward zero. 0.0099 displays
// as 0.00 and 123.456 as 123.45; the caller never sees money that is not
// there.
func (m Money) Display() string {
	return m.d.Truncate(2).StringFixed(2)
}

// String returns the full-precision decimal form at the stored scale,
// trailing zeros included: parsing "10.50" and printing it yields
// "10.50", and 9.99 + 0.01 prints as "10.00".
func (m Money) String() string {
	if exp := m.d.Exponent(); exp < 0 {
		return m.d.StringFixed(-exp)
	}
	return m.d.String()
}
