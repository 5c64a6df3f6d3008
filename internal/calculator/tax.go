package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CalculateWithTax adds taxAmount on top of base. TaxProportional charges each
// participant in proportion to what they already owe; TaxEqual divides it
// evenly. A non-positive tax, whatever the tax type, or a proportional tax
// over a non-positive base total, leaves the amounts unchanged. The input is
// not modified.
func CalculateWithTax(base SplitResult, taxAmount decimal.Decimal, taxType TaxType) (SplitResult, error) {
	out := base.clone()
	if !taxAmount.IsPositive() {
		return out, nil
	}
	if taxType != TaxProportional && taxType != TaxEqual {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTaxType, taxType)
	}

	switch taxType {
	case TaxProportional:
		total := base.Total()
		if !total.IsPositive() {
			return out, nil
		}
		for i, s := range base {
			tax := s.Amount.Div(total).Mul(taxAmount)
			out[i].Amount = Round(s.Amount.Add(tax))
		}
	case TaxEqual:
		if len(base) == 0 {
			return nil, fmt.Errorf("split tax equally: %w", ErrNoParticipants)
		}
		perPerson := taxAmount.Div(decimal.NewFromInt(int64(len(base))))
		for i, s := range base {
			out[i].Amount = Round(s.Amount.Add(perPerson))
		}
	}
	return out, nil
}
