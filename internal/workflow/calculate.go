package workflow

import (
	"fmt"
	"slices"

	"github.com/mmynk/billease/internal/calculator"
	"github.com/mmynk/billease/internal/models"
)

// Snapshot is the immutable engine input derived from a bill.
type Snapshot struct {
	Items        []calculator.Item
	Participants []string
	Assignments  calculator.Assignments
	Options      calculator.Options
}

// SnapshotOf copies a bill into engine inputs. Nothing in the snapshot
// aliases the bill.
func SnapshotOf(bill *models.Bill) Snapshot {
	snap := Snapshot{
		Items:        make([]calculator.Item, len(bill.Items)),
		Participants: slices.Clone(bill.Participants),
		Assignments:  make(calculator.Assignments, len(bill.Items)),
		Options: calculator.Options{
			ManualSplits:    make(calculator.ManualSplits),
			DiscountPercent: bill.DiscountPercent,
			MiscCharge:      bill.MiscCharge,
		},
	}
	for i, item := range bill.Items {
		snap.Items[i] = calculator.Item{Name: item.Description, Amount: item.Amount}
		if len(item.Participants) > 0 {
			snap.Assignments[i] = slices.Clone(item.Participants)
		}
		if len(item.ManualSplit) > 0 {
			shares := make([]calculator.Share, len(item.ManualSplit))
			for j, m := range item.ManualSplit {
				shares[j] = calculator.Share{Participant: m.Participant, Amount: m.Amount}
			}
			snap.Options.ManualSplits[i] = shares
		}
	}
	return snap
}

// Calculate splits the bill and moves to Results.
//
// The engine's rounded amounts are corrected against the expected total
// (discounted items someone pays for plus the misc charge) and checked with a
// tolerance of one cent per participant. With a payer recorded, the result
// also lists the transfers that settle the bill.
func (s *Session) Calculate() (*models.Result, error) {
	if err := s.require("calculate", models.StateAssigning); err != nil {
		return nil, err
	}
	if len(s.bill.Participants) == 0 {
		return nil, ErrNoParticipants
	}

	snap := SnapshotOf(s.bill)
	splits, err := calculator.CalculateSplits(snap.Items, snap.Participants, snap.Assignments, snap.Options)
	if err != nil {
		return nil, fmt.Errorf("calculate splits: %w", err)
	}
	expected, err := calculator.ExpectedTotal(snap.Items, snap.Assignments, snap.Options)
	if err != nil {
		return nil, fmt.Errorf("expected total: %w", err)
	}
	adjusted, err := calculator.AdjustSplitsForRounding(splits, expected)
	if err != nil {
		return nil, fmt.Errorf("adjust splits: %w", err)
	}
	rec := calculator.ValidateSplits(adjusted, expected, calculator.ToleranceFor(len(adjusted)))

	result := &models.Result{
		Splits:             make([]models.PersonSplit, len(adjusted)),
		ExpectedTotal:      expected,
		ActualTotal:        rec.ActualTotal,
		Difference:         rec.Difference,
		Reconciled:         rec.Valid,
		RoundingAdjustment: adjusted.Total().Sub(splits.Total()),
		CalculatedAt:       s.now().Unix(),
	}
	for i, share := range adjusted {
		result.Splits[i] = models.PersonSplit{Participant: share.Participant, Amount: share.Amount}
	}
	if s.bill.PayerID != "" {
		paid := []calculator.Share{{Participant: s.bill.PayerID, Amount: expected}}
		for _, t := range calculator.SettleUp(adjusted, paid) {
			result.Transfers = append(result.Transfers, models.Transfer{From: t.From, To: t.To, Amount: t.Amount})
		}
	}

	s.bill.Result = result
	s.moveTo(models.StateResults)
	return result, nil
}
