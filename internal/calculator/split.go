package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CalculateSplits computes how much each participant owes.
//
// Every item amount is reduced by opts.DiscountPercent, then divided either
// equally among the participants assigned to it or, when opts.ManualSplits has
// an entry for the item, in proportion to the manual amounts. Items nobody is
// assigned to are skipped. opts.MiscCharge is divided equally among all
// participants. Amounts are rounded to cents, half away from zero, only once
// all contributions have been added up.
//
// Names that are not in participants are ignored wherever they appear.
func CalculateSplits(items []Item, participants []string, assignments Assignments, opts Options) (SplitResult, error) {
	factor, err := discountFactor(opts.DiscountPercent)
	if err != nil {
		return nil, err
	}

	owed := make(SplitResult, 0, len(participants))
	index := make(map[string]int, len(participants))
	for _, p := range participants {
		if _, seen := index[p]; seen {
			continue
		}
		index[p] = len(owed)
		owed = append(owed, Share{Participant: p, Amount: decimal.Zero})
	}

	if opts.MiscCharge.IsPositive() && len(owed) == 0 {
		return nil, fmt.Errorf("distribute misc charge: %w", ErrNoParticipants)
	}

	for i, item := range items {
		manual, hasManual := opts.ManualSplits[i]
		contributions := itemContributions(item.Amount.Mul(factor), assignments[i], manual, hasManual)
		for _, c := range restrictToKnown(contributions, index) {
			pos := index[c.Participant]
			owed[pos].Amount = owed[pos].Amount.Add(c.Amount)
		}
	}

	if opts.MiscCharge.IsPositive() {
		perPerson := opts.MiscCharge.Div(decimal.NewFromInt(int64(len(owed))))
		for i := range owed {
			owed[i].Amount = owed[i].Amount.Add(perPerson)
		}
	}

	for i := range owed {
		owed[i].Amount = Round(owed[i].Amount)
	}
	return owed, nil
}

// itemContributions splits one discounted item amount. The manual split, when
// present, is authoritative: people assigned to the item but missing from it
// get nothing.
func itemContributions(discounted decimal.Decimal, assigned []string, manual []Share, hasManual bool) []Share {
	if !paysFor(assigned, manual, hasManual) {
		return nil
	}
	if hasManual {
		return manualContributions(discounted, manual)
	}
	return equalContributions(discounted, assigned)
}

func equalContributions(discounted decimal.Decimal, assigned []string) []Share {
	perPerson := discounted.Div(decimal.NewFromInt(int64(len(assigned))))
	out := make([]Share, len(assigned))
	for i, p := range assigned {
		out[i] = Share{Participant: p, Amount: perPerson}
	}
	return out
}

// paysFor reports whether an item is charged to anyone at all.
func paysFor(assigned []string, manual []Share, hasManual bool) bool {
	if len(assigned) == 0 {
		return false
	}
	return !hasManual || manualTotal(manual).IsPositive()
}

func manualTotal(manual []Share) decimal.Decimal {
	total := decimal.Zero
	for _, s := range manual {
		total = total.Add(s.Amount)
	}
	return total
}

// manualContributions rescales the raw manual amounts so they add up to
// discounted. Shares are allocated from running totals, which makes the
// contributions sum to discounted exactly instead of accumulating division
// remainders. A manual split whose amounts sum to zero contributes nothing.
func manualContributions(discounted decimal.Decimal, manual []Share) []Share {
	total := manualTotal(manual)
	if !total.IsPositive() {
		return nil
	}

	out := make([]Share, 0, len(manual))
	running, allocated := decimal.Zero, decimal.Zero
	for _, s := range manual {
		running = running.Add(s.Amount)
		cumulative := running.Mul(discounted).Div(total)
		out = append(out, Share{Participant: s.Participant, Amount: cumulative.Sub(allocated)})
		allocated = cumulative
	}
	return out
}

// restrictToKnown drops contributions for names outside the participant set.
func restrictToKnown(contributions []Share, known map[string]int) []Share {
	out := contributions[:0:0]
	for _, c := range contributions {
		if _, ok := known[c.Participant]; ok {
			out = append(out, c)
		}
	}
	return out
}
