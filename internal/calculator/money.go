package calculator

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)

	// Cent is the smallest amount a split is rounded to.
	Cent = decimal.New(1, -2)

	// DefaultTolerance is the reconciliation tolerance used when a caller has
	// no better bound.
	DefaultTolerance = Cent
)

// Round rounds an amount to 2 decimal places, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// discountFactor returns (1 - percent/100).
func discountFactor(percent decimal.Decimal) (decimal.Decimal, error) {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return decimal.Zero, ErrDiscountOutOfRange
	}
	return decimal.NewFromInt(1).Sub(percent.Div(hundred)), nil
}

// ToleranceFor scales the default tolerance by the number of participants,
// since each participant's amount is rounded independently.
func ToleranceFor(participants int) decimal.Decimal {
	if participants < 1 {
		return DefaultTolerance
	}
	return DefaultTolerance.Mul(decimal.NewFromInt(int64(participants)))
}
