package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billease/internal/calculator"
)

var ErrInvalidOutput = errors.New("invalid model output")

// listKeys are checked in order before falling back to any array value.
var listKeys = []string{"items", "bill_items", "extracted_items"}

// ParseItems reads the model's answer. It accepts a bare array or an object
// wrapping the array, and keeps only entries with a name and a positive
// amount. Amounts may be numbers or numeric strings.
func ParseItems(raw string) ([]calculator.Item, error) {
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(raw)))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	entries, err := itemList(doc)
	if err != nil {
		return nil, err
	}

	items := make([]calculator.Item, 0, len(entries))
	for _, e := range entries {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		name := firstString(obj, "item", "name")
		amount, ok := parseAmount(firstValue(obj, "amount", "price"))
		if name == "" || !ok || !amount.IsPositive() {
			continue
		}
		items = append(items, calculator.Item{Name: name, Amount: amount})
	}
	return items, nil
}

func itemList(doc any) ([]any, error) {
	switch v := doc.(type) {
	case []any:
		return v, nil
	case map[string]any:
		for _, key := range listKeys {
			if list, ok := v[key].([]any); ok {
				return list, nil
			}
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if list, ok := v[k].([]any); ok {
				return list, nil
			}
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: expected an array or object", ErrInvalidOutput)
	}
}

func firstValue(obj map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(obj map[string]any, keys ...string) string {
	s, _ := firstValue(obj, keys...).(string)
	return strings.TrimSpace(s)
}

func parseAmount(v any) (decimal.Decimal, bool) {
	var s string
	switch a := v.(type) {
	case json.Number:
		s = a.String()
	case string:
		s = strings.Map(func(r rune) rune {
			switch r {
			case ',', ' ', '$', '₹', '€', '£':
				return -1
			}
			return r
		}, a)
	default:
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ValidateItems lists problems worth showing before the user reviews the
// items. An empty result means nothing looks wrong.
func ValidateItems(items []calculator.Item) []string {
	if len(items) == 0 {
		return []string{"No items were extracted from the bill"}
	}
	var warnings []string
	total := decimal.Zero
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			warnings = append(warnings, fmt.Sprintf("Item %d has no name", i+1))
			continue
		}
		if !item.Amount.IsPositive() {
			warnings = append(warnings, fmt.Sprintf("Invalid amount for %s: %s", item.Name, item.Amount))
			continue
		}
		total = total.Add(item.Amount)
	}
	if total.IsZero() {
		warnings = append(warnings, "Total amount is zero; this looks wrong")
	}
	return warnings
}

