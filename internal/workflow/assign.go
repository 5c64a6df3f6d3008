package workflow

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billease/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Assign sets who shares an item. An empty list means nobody pays for it.
// Manual shares for people no longer assigned are dropped.
func (s *Session) Assign(index int, names []string) error {
	if err := s.require("assign item", models.StateAssigning); err != nil {
		return err
	}
	item, err := s.item(index)
	if err != nil {
		return err
	}

	assigned := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if !s.isParticipant(name) {
			return fmt.Errorf("%w: %q", ErrUnknownParticipant, raw)
		}
		if !slices.Contains(assigned, name) {
			assigned = append(assigned, name)
		}
	}

	item.Participants = assigned
	item.Assigned = true
	item.ManualSplit = slices.DeleteFunc(item.ManualSplit, func(m models.ManualShare) bool {
		return !slices.Contains(assigned, m.Participant)
	})
	if len(item.ManualSplit) == 0 {
		item.ManualSplit = nil
	}
	return nil
}

// SetManualSplit replaces the equal split of an item with custom amounts.
// Every share must belong to someone assigned to the item. Amounts that do
// not add up to the item amount are accepted and reported as warnings; the
// calculation rescales them.
func (s *Session) SetManualSplit(index int, shares []models.ManualShare) ([]string, error) {
	if err := s.require("set manual split", models.StateAssigning); err != nil {
		return nil, err
	}
	item, err := s.item(index)
	if err != nil {
		return nil, err
	}
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no shares given", ErrInvalidManualSplit)
	}

	clean := make([]models.ManualShare, 0, len(shares))
	total := decimal.Zero
	for _, share := range shares {
		name := strings.TrimSpace(share.Participant)
		if !s.isParticipant(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParticipant, share.Participant)
		}
		if !slices.Contains(item.Participants, name) {
			return nil, fmt.Errorf("%w: %s is not assigned to %q", ErrInvalidManualSplit, name, item.Description)
		}
		if slices.ContainsFunc(clean, func(m models.ManualShare) bool { return m.Participant == name }) {
			return nil, fmt.Errorf("%w: %s listed twice", ErrInvalidManualSplit, name)
		}
		if share.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: negative amount for %s", ErrInvalidManualSplit, name)
		}
		clean = append(clean, models.ManualShare{Participant: name, Amount: share.Amount})
		total = total.Add(share.Amount)
	}
	item.ManualSplit = clean

	var warnings []string
	switch {
	case total.IsZero():
		warnings = append(warnings, fmt.Sprintf("manual amounts for %q add up to zero; nobody will pay for it", item.Description))
	case !total.Equal(item.Amount):
		warnings = append(warnings, fmt.Sprintf("manual amounts for %q add up to %s, not %s; they will be scaled proportionally",
			item.Description, total.StringFixed(2), item.Amount.StringFixed(2)))
	}
	return warnings, nil
}

// ClearManualSplit goes back to the equal split for an item.
func (s *Session) ClearManualSplit(index int) error {
	if err := s.require("clear manual split", models.StateAssigning); err != nil {
		return err
	}
	item, err := s.item(index)
	if err != nil {
		return err
	}
	item.ManualSplit = nil
	return nil
}

// SetDiscount sets the percentage taken off every item.
func (s *Session) SetDiscount(percent decimal.Decimal) error {
	if err := s.require("set discount", models.StateAssigning); err != nil {
		return err
	}
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return fmt.Errorf("%w: got %s", ErrInvalidDiscount, percent)
	}
	s.bill.DiscountPercent = percent
	return nil
}

// SetMiscCharge sets the flat charge divided equally among everyone.
func (s *Session) SetMiscCharge(amount decimal.Decimal) error {
	if err := s.require("set misc charge", models.StateAssigning); err != nil {
		return err
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrInvalidMiscCharge, amount)
	}
	s.bill.MiscCharge = amount
	return nil
}

// SetPayer records who paid the bill. An empty name clears it.
func (s *Session) SetPayer(name string) error {
	if err := s.require("set payer", models.StateAssigning); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name != "" && !s.isParticipant(name) {
		return fmt.Errorf("%w: %q", ErrUnknownParticipant, name)
	}
	s.bill.PayerID = name
	return nil
}
