package domain

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

type ID string

func ValidateID(id string) bool {
	return len(id) == 24
}

// Amount is a monetary value in cents.
type Amount int64

var (
	ErrInvalidAmount    = errors.New("amount must be a decimal number")
	ErrAmountOutOfRange = errors.New("amount is out of range")
)

var maxCents = decimal.NewFromInt(math.MaxInt64)

func NewAmountFromCents(cents int64) Amount {
	return Amount(cents)
}

// NewAmountFromDecimal rounds d half away from zero to two decimal places.
// The sign is checked before rounding, so -0.001 is rejected rather than
// becoming zero.
func NewAmountFromDecimal(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return 0, ErrNegativePrice
	}
	cents := d.Round(2).Shift(2)
	if cents.GreaterThan(maxCents) {
		return 0, ErrAmountOutOfRange
	}
	return Amount(cents.IntPart()), nil
}

func NewAmountFromFloat(value float64) (Amount, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrInvalidAmount
	}
	return NewAmountFromDecimal(decimal.NewFromFloat(value))
}

// ParseAmount accepts plain decimal text such as "9.99" or "10".
func ParseAmount(raw string) (Amount, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return NewAmountFromDecimal(d)
}

func (a Amount) IsNegative() bool {
	return a < 0
}

func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

func (a Amount) Float64() float64 {
	return a.Decimal().InexactFloat64()
}

// String formats the amount with exactly two decimals and no currency symbol.
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

type Event interface {
	GetName() string
	GetEntityName() string
}
