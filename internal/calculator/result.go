package calculator

import "github.com/shopspring/decimal"

// SplitResult holds the amount owed by each participant, in participant order.
// Operations in this package never modify a SplitResult they receive; they
// return a new one.
type SplitResult []Share

// Amount returns the amount owed by participant, or zero if they are not part
// of the result.
func (r SplitResult) Amount(participant string) decimal.Decimal {
	for _, s := range r {
		if s.Participant == participant {
			return s.Amount
		}
	}
	return decimal.Zero
}

// Has reports whether participant appears in the result.
func (r SplitResult) Has(participant string) bool {
	for _, s := range r {
		if s.Participant == participant {
			return true
		}
	}
	return false
}

// Total is the sum of all amounts.
func (r SplitResult) Total() decimal.Decimal {
	total := decimal.Zero
	for _, s := range r {
		total = total.Add(s.Amount)
	}
	return total
}

// Participants returns the participant names in result order.
func (r SplitResult) Participants() []string {
	names := make([]string, len(r))
	for i, s := range r {
		names[i] = s.Participant
	}
	return names
}

func (r SplitResult) clone() SplitResult {
	out := make(SplitResult, len(r))
	copy(out, r)
	return out
}
