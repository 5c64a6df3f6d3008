package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Reconciliation reports how a set of splits compares to an expected total.
type Reconciliation struct {
	Valid       bool            `json:"valid"`
	ActualTotal decimal.Decimal `json:"actual_total"`
	Difference  decimal.Decimal `json:"difference"`
}

// ValidateSplits checks that the splits add up to expectedTotal within
// tolerance. It never fails; an empty result has a total of zero.
func ValidateSplits(splits SplitResult, expectedTotal, tolerance decimal.Decimal) Reconciliation {
	actual := splits.Total()
	diff := actual.Sub(expectedTotal).Abs()
	return Reconciliation{
		Valid:       diff.LessThanOrEqual(tolerance),
		ActualTotal: actual,
		Difference:  diff,
	}
}

// AdjustSplitsForRounding moves the gap between targetTotal and the sum of
// splits onto the participant who owes the most (the first one on ties), so
// the displayed amounts add up to the target. Gaps under a cent are left
// alone. The input is not modified.
func AdjustSplitsForRounding(splits SplitResult, targetTotal decimal.Decimal) (SplitResult, error) {
	if len(splits) == 0 {
		return nil, fmt.Errorf("adjust splits for rounding: %w", ErrNoParticipants)
	}

	adjusted := splits.clone()
	diff := targetTotal.Sub(splits.Total())
	if diff.Abs().LessThan(Cent) {
		return adjusted, nil
	}

	largest := 0
	for i, s := range splits {
		if s.Amount.GreaterThan(splits[largest].Amount) {
			largest = i
		}
	}
	adjusted[largest].Amount = Round(adjusted[largest].Amount.Add(diff))
	return adjusted, nil
}

// ExpectedTotal is the amount CalculateSplits should add up to before
// rounding: the discounted amounts of every item that someone pays for,
// plus the misc charge, rounded to cents. Items nobody is assigned to and
// items whose manual split adds up to zero are left out, the same as in
// CalculateSplits.
func ExpectedTotal(items []Item, assignments Assignments, opts Options) (decimal.Decimal, error) {
	factor, err := discountFactor(opts.DiscountPercent)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i, item := range items {
		manual, hasManual := opts.ManualSplits[i]
		if !paysFor(assignments[i], manual, hasManual) {
			continue
		}
		total = total.Add(item.Amount.Mul(factor))
	}
	if opts.MiscCharge.IsPositive() {
		total = total.Add(opts.MiscCharge)
	}
	return Round(total), nil
}
