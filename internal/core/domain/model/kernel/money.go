package kernel

import (
	"fmt"

	"pizzeria/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is an exact monetary amount in the shop currency. Prices are kept at full
// precision; rounding to cents happens only when rendered through String.
// The zero value is a valid amount of zero.
type Money struct {
	amount decimal.Decimal
}

// NewMoney wraps a decimal amount.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// MoneyFromFloat converts a float such as 8.99 using its shortest decimal representation,
// so 8.99 is stored as exactly 8.99.
func MoneyFromFloat(amount float64) Money {
	return Money{amount: decimal.NewFromFloat(amount)}
}

// MoneyFromString parses amounts like "10.50".
func MoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a decimal: %w", amount, err))
	}
	return Money{amount: d}, nil
}

// ZeroMoney returns an amount of zero.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the underlying decimal.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Float64 returns the closest float64, for transport encodings that need a number.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Mul multiplies by a decimal factor such as a size multiplier.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

// Times multiplies by a quantity.
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsEqual compares amounts numerically, so 13 and 13.00 are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with two decimals.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
