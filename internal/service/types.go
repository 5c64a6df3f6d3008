package service

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billease/internal/calculator"
	"github.com/mmynk/billease/internal/models"
)

// Bill is the wire form of models.Bill.
type Bill struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	State           models.BillState `json:"state"`
	Items           []BillItem       `json:"items"`
	Participants    []string         `json:"participants"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	MiscCharge      decimal.Decimal  `json:"misc_charge"`
	PayerID         string           `json:"payer_id,omitempty"`
	GroupID         string           `json:"group_id,omitempty"`
	Result          *models.Result   `json:"result,omitempty"`
	CreatedAt       int64            `json:"created_at"`
	UpdatedAt       int64            `json:"updated_at"`
}

// BillItem is the wire form of models.Item.
type BillItem struct {
	Description  string               `json:"description"`
	Amount       decimal.Decimal      `json:"amount"`
	Participants []string             `json:"participants,omitempty"`
	ManualSplit  []models.ManualShare `json:"manual_split,omitempty"`
	Assigned     bool                 `json:"assigned,omitempty"`
}

// BillSummary is a bill in a listing.
type BillSummary struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	State        models.BillState `json:"state"`
	Participants []string         `json:"participants"`
	CreatedAt    int64            `json:"created_at"`
}

// Group is the wire form of models.Group.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"created_at"`
}

// Stateless engine calls.

type CalculateSplitsRequest struct {
	Items           []calculator.Item       `json:"items"`
	Participants    []string                `json:"participants"`
	Assignments     calculator.Assignments  `json:"assignments"`
	ManualSplits    calculator.ManualSplits `json:"manual_splits,omitempty"`
	DiscountPercent decimal.Decimal         `json:"discount_percent"`
	MiscCharge      decimal.Decimal         `json:"misc_charge"`
}

type SplitsResponse struct {
	Splits []calculator.Share `json:"splits"`
	Total  decimal.Decimal    `json:"total"`
}

type ValidateSplitsRequest struct {
	Splits        []calculator.Share  `json:"splits"`
	ExpectedTotal decimal.Decimal     `json:"expected_total"`
	Tolerance     decimal.NullDecimal `json:"tolerance"`
}

type ValidateSplitsResponse = calculator.Reconciliation

type AdjustSplitsRequest struct {
	Splits      []calculator.Share `json:"splits"`
	TargetTotal decimal.Decimal    `json:"target_total"`
}

type ApplyTaxRequest struct {
	Splits    []calculator.Share `json:"splits"`
	TaxAmount decimal.Decimal    `json:"tax_amount"`
	TaxType   calculator.TaxType `json:"tax_type"`
}

// Bill workflow calls.

type CreateBillRequest struct {
	Title string `json:"title"`
	// Items entered by hand; when present the bill skips the upload step.
	Items []BillItem `json:"items,omitempty"`
}

type BillRequest struct {
	BillID string `json:"bill_id"`
}

type BillResponse struct {
	Bill     *Bill    `json:"bill"`
	Warnings []string `json:"warnings,omitempty"`
}

type ListBillsRequest struct{}

type ListBillsResponse struct {
	Bills []BillSummary `json:"bills"`
}

type DeleteBillResponse struct{}

type ExtractItemsRequest struct {
	BillID string `json:"bill_id"`
	// Image is base64 in JSON.
	Image    []byte `json:"image"`
	MimeType string `json:"mime_type"`
}

type ReplaceItemsRequest struct {
	BillID string     `json:"bill_id"`
	Items  []BillItem `json:"items"`
}

type SetParticipantsRequest struct {
	BillID       string   `json:"bill_id"`
	Participants []string `json:"participants"`
}

type AssignItemRequest struct {
	BillID       string   `json:"bill_id"`
	ItemIndex    int      `json:"item_index"`
	Participants []string `json:"participants"`
}

type SetManualSplitRequest struct {
	BillID    string               `json:"bill_id"`
	ItemIndex int                  `json:"item_index"`
	Shares    []models.ManualShare `json:"shares"`
}

type ClearManualSplitRequest struct {
	BillID    string `json:"bill_id"`
	ItemIndex int    `json:"item_index"`
}

type SetAdjustmentsRequest struct {
	BillID          string          `json:"bill_id"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	MiscCharge      decimal.Decimal `json:"misc_charge"`
	PayerID         string          `json:"payer_id"`
}

// Group calls.

type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type UseGroupRequest struct {
	BillID  string `json:"bill_id"`
	GroupID string `json:"group_id"`
}

// GetBillID lets interceptors tag logs with the bill a call is about.
func (r *BillRequest) GetBillID() string             { return r.BillID }
func (r *ExtractItemsRequest) GetBillID() string     { return r.BillID }
func (r *ReplaceItemsRequest) GetBillID() string     { return r.BillID }
func (r *SetParticipantsRequest) GetBillID() string  { return r.BillID }
func (r *AssignItemRequest) GetBillID() string       { return r.BillID }
func (r *SetManualSplitRequest) GetBillID() string   { return r.BillID }
func (r *ClearManualSplitRequest) GetBillID() string { return r.BillID }
func (r *SetAdjustmentsRequest) GetBillID() string   { return r.BillID }
func (r *UseGroupRequest) GetBillID() string         { return r.BillID }

func toBill(b *models.Bill) *Bill {
	items := make([]BillItem, len(b.Items))
	for i, item := range b.Items {
		items[i] = BillItem{
			Description:  item.Description,
			Amount:       item.Amount,
			Participants: item.Participants,
			ManualSplit:  item.ManualSplit,
			Assigned:     item.Assigned,
		}
	}
	participants := b.Participants
	if participants == nil {
		participants = []string{}
	}
	return &Bill{
		ID:              b.ID,
		Title:           b.Title,
		State:           b.State,
		Items:           items,
		Participants:    participants,
		DiscountPercent: b.DiscountPercent,
		MiscCharge:      b.MiscCharge,
		PayerID:         b.PayerID,
		GroupID:         b.GroupID,
		Result:          b.Result,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func fromBillItems(in []BillItem) []models.Item {
	items := make([]models.Item, len(in))
	for i, item := range in {
		items[i] = models.Item{Description: item.Description, Amount: item.Amount}
	}
	return items
}

func fromCalculatorItems(in []calculator.Item) []models.Item {
	items := make([]models.Item, len(in))
	for i, item := range in {
		items[i] = models.Item{Description: item.Name, Amount: item.Amount}
	}
	return items
}

func toGroup(g *models.Group) *Group {
	return &Group{
		ID:        g.ID,
		Name:      g.Name,
		Members:   slices.Clone(g.Members),
		CreatedAt: g.CreatedAt,
	}
}
