package calculator

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoParticipants is returned when an amount has to be divided across
	// an empty participant set.
	ErrNoParticipants = errors.New("must have at least one participant")

	// ErrDiscountOutOfRange is returned for a discount outside [0, 100].
	ErrDiscountOutOfRange = errors.New("discount percent must be between 0 and 100")

	// ErrUnknownTaxType is returned by CalculateWithTax for an unsupported tax type.
	ErrUnknownTaxType = errors.New("unknown tax type")
)

// Item is a single line entry on the bill.
type Item struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Share is one participant's amount, either an owed amount in a SplitResult
// or a raw manual amount in a ManualSplits entry.
type Share struct {
	Participant string          `json:"participant"`
	Amount      decimal.Decimal `json:"amount"`
}

// Assignments maps an item index to the participants sharing that item.
// A missing or empty entry means nobody shares the item.
type Assignments map[int][]string

// ManualSplits maps an item index to the custom amounts that replace the
// equal split for that item. The amounts are normalized against the
// discounted item amount, so they only need to be proportionally right.
type ManualSplits map[int][]Share

// TaxType selects how CalculateWithTax distributes an extra charge.
type TaxType string

const (
	TaxProportional TaxType = "proportional"
	TaxEqual        TaxType = "equal"
)

// Options carries the optional inputs of CalculateSplits.
// The zero value means no manual splits, no discount and no misc charge.
type Options struct {
	ManualSplits ManualSplits

	// DiscountPercent is applied to every item before splitting. Must be in [0, 100].
	DiscountPercent decimal.Decimal

	// MiscCharge is a flat amount divided equally among all participants.
	MiscCharge decimal.Decimal
}
