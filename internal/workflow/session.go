// Package workflow moves a bill through the splitting steps:
//
//	Uploading → ReviewingItems → AddingPeople → Assigning → Results
//
// Every edit is checked against the current step and against the bill's
// participant list, so the split engine only ever sees a complete, consistent
// snapshot.
package workflow

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billease/internal/models"
)

var (
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrNoItems              = errors.New("bill has no items")
	ErrInvalidItem          = errors.New("invalid item")
	ErrItemIndex            = errors.New("item index out of range")
	ErrEmptyName            = errors.New("participant name is empty")
	ErrDuplicateParticipant = errors.New("participant already added")
	ErrUnknownParticipant   = errors.New("unknown participant")
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrInvalidManualSplit   = errors.New("invalid manual split")
	ErrInvalidDiscount      = errors.New("discount percent must be between 0 and 100")
	ErrInvalidMiscCharge    = errors.New("misc charge must not be negative")
)

// Session drives one bill through the workflow. It edits the bill in place;
// callers persist Bill() after each successful operation.
type Session struct {
	bill *models.Bill
	now  func() time.Time
}

// Resume wraps a bill loaded from storage. A bill without a state starts at
// StateUploading.
func Resume(bill *models.Bill) *Session {
	if bill.State == "" {
		bill.State = models.StateUploading
	}
	return &Session{bill: bill, now: time.Now}
}

// Bill returns the underlying bill.
func (s *Session) Bill() *models.Bill {
	return s.bill
}

// State returns the current workflow step.
func (s *Session) State() models.BillState {
	return s.bill.State
}

func (s *Session) require(op string, states ...models.BillState) error {
	for _, st := range states {
		if s.bill.State == st {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, op, s.bill.State)
}

func (s *Session) moveTo(state models.BillState) {
	slog.Debug("Bill state changed", "bill_id", s.bill.ID, "from", s.bill.State, "to", state)
	s.bill.State = state
}

// Back returns to the previous step. Leaving Results discards the result.
func (s *Session) Back() error {
	switch s.bill.State {
	case models.StateReviewingItems:
		s.moveTo(models.StateUploading)
	case models.StateAddingPeople:
		s.moveTo(models.StateReviewingItems)
	case models.StateAssigning:
		s.moveTo(models.StateAddingPeople)
	case models.StateResults:
		s.bill.Result = nil
		s.moveTo(models.StateAssigning)
	default:
		return fmt.Errorf("%w: nothing before %s", ErrInvalidTransition, s.bill.State)
	}
	return nil
}

// Reset clears everything entered so far and starts over from Uploading.
// The bill keeps its ID and title.
func (s *Session) Reset() {
	s.bill.Items = nil
	s.bill.Participants = nil
	s.bill.DiscountPercent = decimal.Zero
	s.bill.MiscCharge = decimal.Zero
	s.bill.PayerID = ""
	s.bill.GroupID = ""
	s.bill.Result = nil
	s.moveTo(models.StateUploading)
}
