// Package calculator implements the personal finance calculators: investment
// projection, mortgage amortization and retirement planning.
//
// All amounts are decimal. Intermediate values keep workPlaces decimal places;
// results are rounded to cents.
package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidInput = errors.New("invalid calculator input")

const (
	workPlaces  = 10
	moneyPlaces = 2
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	one     = decimal.NewFromInt(1)
)

// rate converts a percentage into a fraction, optionally spread over periods.
func rate(pct decimal.Decimal, periods int64) decimal.Decimal {
	r := pct.Div(hundred)
	if periods > 1 {
		r = r.Div(decimal.NewFromInt(periods))
	}
	return r.Round(workPlaces)
}

// pow raises base to a non-negative integer power, rounding every step.
func pow(base decimal.Decimal, n int) decimal.Decimal {
	result := one
	for i := 0; i < n; i++ {
		result = result.Mul(base).Round(workPlaces)
	}
	return result
}

func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func requireNonNegative(name string, d decimal.Decimal) error {
	if d.IsNegative() {
		return invalid("%s must not be negative", name)
	}
	return nil
}

func requirePercent(name string, d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(hundred) {
		return invalid("%s must be between 0 and 100", name)
	}
	return nil
}
