package workflow

import (
	"fmt"
	"strings"

	"github.com/mmynk/billease/internal/models"
)

func validateItem(item models.Item) (models.Item, error) {
	desc := strings.TrimSpace(item.Description)
	if desc == "" {
		return models.Item{}, fmt.Errorf("%w: name is empty", ErrInvalidItem)
	}
	if item.Amount.IsNegative() {
		return models.Item{}, fmt.Errorf("%w: %q has negative amount %s", ErrInvalidItem, desc, item.Amount)
	}
	return models.Item{ID: item.ID, Description: desc, Amount: item.Amount}, nil
}

func validateItems(items []models.Item) ([]models.Item, error) {
	out := make([]models.Item, 0, len(items))
	for i, item := range items {
		clean, err := validateItem(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, clean)
	}
	return out, nil
}

func (s *Session) item(index int) (*models.Item, error) {
	if index < 0 || index >= len(s.bill.Items) {
		return nil, fmt.Errorf("%w: %d (bill has %d items)", ErrItemIndex, index, len(s.bill.Items))
	}
	return &s.bill.Items[index], nil
}

// LoadItems takes the item list from extraction or manual entry and moves
// on to reviewing it. Any assignment on the incoming items is dropped.
func (s *Session) LoadItems(items []models.Item) error {
	if err := s.require("load items", models.StateUploading); err != nil {
		return err
	}
	clean, err := validateItems(items)
	if err != nil {
		return err
	}
	s.bill.Items = clean
	s.bill.Result = nil
	s.moveTo(models.StateReviewingItems)
	return nil
}

// ReplaceItems swaps in an edited item list while reviewing.
func (s *Session) ReplaceItems(items []models.Item) error {
	if err := s.require("replace items", models.StateReviewingItems); err != nil {
		return err
	}
	clean, err := validateItems(items)
	if err != nil {
		return err
	}
	s.bill.Items = clean
	return nil
}

// AddItem appends an item and returns its index.
func (s *Session) AddItem(item models.Item) (int, error) {
	if err := s.require("add item", models.StateReviewingItems); err != nil {
		return 0, err
	}
	clean, err := validateItem(item)
	if err != nil {
		return 0, err
	}
	s.bill.Items = append(s.bill.Items, clean)
	return len(s.bill.Items) - 1, nil
}

// UpdateItem corrects the name and amount of an item. Its assignment is kept.
func (s *Session) UpdateItem(index int, item models.Item) error {
	if err := s.require("update item", models.StateReviewingItems); err != nil {
		return err
	}
	target, err := s.item(index)
	if err != nil {
		return err
	}
	clean, err := validateItem(item)
	if err != nil {
		return err
	}
	target.Description = clean.Description
	target.Amount = clean.Amount
	return nil
}

// RemoveItem deletes an item; later items shift down by one index.
func (s *Session) RemoveItem(index int) error {
	if err := s.require("remove item", models.StateReviewingItems); err != nil {
		return err
	}
	if _, err := s.item(index); err != nil {
		return err
	}
	s.bill.Items = append(s.bill.Items[:index], s.bill.Items[index+1:]...)
	return nil
}

// ConfirmItems finishes the review and moves on to adding people.
func (s *Session) ConfirmItems() error {
	if err := s.require("confirm items", models.StateReviewingItems); err != nil {
		return err
	}
	if len(s.bill.Items) == 0 {
		return ErrNoItems
	}
	s.moveTo(models.StateAddingPeople)
	return nil
}
