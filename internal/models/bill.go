package models

import "github.com/shopspring/decimal"

// BillState is the step of the splitting workflow a bill is in.
type BillState string

const (
	// StateUploading: waiting for the bill photo (or a manual item list).
	StateUploading BillState = "uploading"
	// StateReviewingItems: extracted items can be corrected before splitting.
	StateReviewingItems BillState = "reviewing_items"
	// StateAddingPeople: the participant list is being built.
	StateAddingPeople BillState = "adding_people"
	// StateAssigning: items are assigned, manual splits, discount and misc charge set.
	StateAssigning BillState = "assigning"
	// StateResults: the split has been calculated.
	StateResults BillState = "results"
)

// Bill is one bill being split, together with everything the user has
// entered so far and the last calculated result.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// Title is the human-readable name for the bill.
	// Auto-generated from participants or date when left empty.
	Title string

	// State is the current workflow step.
	State BillState

	// Items are the line items, in receipt order.
	// Item indices are positions in this slice.
	Items []Item

	// Participants is the ordered list of people splitting the bill.
	// Names are unique; the order is kept in every result.
	Participants []string

	// DiscountPercent is applied to every item before splitting, in [0, 100].
	DiscountPercent decimal.Decimal

	// MiscCharge is a flat amount divided equally among all participants.
	MiscCharge decimal.Decimal

	// PayerID is the participant who paid the bill, if known.
	PayerID string

	// GroupID is the group the participants were loaded from, if any.
	GroupID string

	// Result is the last calculated split. Nil until the bill reaches StateResults.
	Result *Result

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// Item is a single line item on a bill.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// Description is the name of the item (e.g., "Masala Dosa").
	Description string

	// Amount is the price of the item before any discount.
	Amount decimal.Decimal

	// Participants are the people sharing this item.
	// Empty means nobody pays for it.
	Participants []string

	// Assigned is set once the participants were chosen explicitly.
	// Items never assigned default to everyone when participants are confirmed.
	Assigned bool

	// ManualSplit overrides the equal split when non-empty.
	// Amounts are rescaled to the discounted item amount.
	ManualSplit []ManualShare
}

// ManualShare is one participant's custom amount for an item.
type ManualShare struct {
	Participant string          `json:"participant"`
	Amount      decimal.Decimal `json:"amount"`
}

// PersonSplit is what one participant owes.
type PersonSplit struct {
	Participant string          `json:"participant"`
	Amount      decimal.Decimal `json:"amount"`
}

// Transfer is a payment that settles the bill with the payer.
type Transfer struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// Result is the outcome of a calculation.
type Result struct {
	// Splits are the final amounts owed, in participant order.
	Splits []PersonSplit `json:"splits"`

	// ExpectedTotal is the discounted total of assigned items plus the misc charge.
	ExpectedTotal decimal.Decimal `json:"expected_total"`

	// ActualTotal is the sum of Splits; Difference is |ActualTotal - ExpectedTotal|.
	ActualTotal decimal.Decimal `json:"actual_total"`
	Difference  decimal.Decimal `json:"difference"`

	// Reconciled reports whether the splits matched ExpectedTotal within tolerance.
	Reconciled bool `json:"reconciled"`

	// RoundingAdjustment is the amount moved onto the largest share so the
	// splits add up to ExpectedTotal. Zero when no correction was needed.
	RoundingAdjustment decimal.Decimal `json:"rounding_adjustment"`

	// Transfers settle the bill with PayerID. Empty when no payer is set.
	Transfers []Transfer `json:"transfers,omitempty"`

	// CalculatedAt is the Unix timestamp of the calculation.
	CalculatedAt int64 `json:"calculated_at"`
}
