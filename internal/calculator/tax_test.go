package calculator

import (
	"errors"
	"testing"
)

func TestCalculateWithTax(t *testing.T) {
	tests := []struct {
		name    string
		base    SplitResult
		tax     string
		taxType TaxType
		want    map[string]string
	}{
		{
			name:    "proportional",
			base:    shares("Alice", "20", "Bob", "10"),
			tax:     "3",
			taxType: TaxProportional,
			want:    map[string]string{"Alice": "22", "Bob": "11"},
		},
		{
			name:    "equal",
			base:    shares("Alice", "20", "Bob", "10"),
			tax:     "3",
			taxType: TaxEqual,
			want:    map[string]string{"Alice": "21.5", "Bob": "11.5"},
		},
		{
			name:    "proportional rounds each share",
			base:    shares("A", "10", "B", "10", "C", "10"),
			tax:     "1",
			taxType: TaxProportional,
			want:    map[string]string{"A": "10.33", "B": "10.33", "C": "10.33"},
		},
		{
			name:    "zero tax is a no-op",
			base:    shares("A", "10", "B", "5"),
			tax:     "0",
			taxType: TaxEqual,
			want:    map[string]string{"A": "10", "B": "5"},
		},
		{
			name:    "negative tax is a no-op",
			base:    shares("A", "10"),
			tax:     "-2",
			taxType: TaxProportional,
			want:    map[string]string{"A": "10"},
		},
		{
			name:    "proportional over zero base is a no-op",
			base:    shares("A", "0", "B", "0"),
			tax:     "5",
			taxType: TaxProportional,
			want:    map[string]string{"A": "0", "B": "0"},
		},
		{
			name:    "equal over zero base still charges everyone",
			base:    shares("A", "0", "B", "0"),
			tax:     "5",
			taxType: TaxEqual,
			want:    map[string]string{"A": "2.5", "B": "2.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateWithTax(tt.base, d(tt.tax), tt.taxType)
			if err != nil {
				t.Fatalf("CalculateWithTax() error = %v", err)
			}
			expectShares(t, got, tt.want)
		})
	}
}

func TestCalculateWithTax_Errors(t *testing.T) {
	if _, err := CalculateWithTax(nil, d("5"), TaxEqual); !errors.Is(err, ErrNoParticipants) {
		t.Errorf("equal over empty base: error = %v, want %v", err, ErrNoParticipants)
	}
	if _, err := CalculateWithTax(shares("A", "1"), d("5"), TaxType("bogus")); !errors.Is(err, ErrUnknownTaxType) {
		t.Errorf("unknown type: error = %v, want %v", err, ErrUnknownTaxType)
	}

	got, err := CalculateWithTax(nil, d("5"), TaxProportional)
	if err != nil || len(got) != 0 {
		t.Errorf("proportional over empty base = %v, %v; want empty, nil", got, err)
	}
}

func TestCalculateWithTax_NonPositiveTaxIgnoresType(t *testing.T) {
	base := shares("A", "10", "B", "20")
	for _, tax := range []string{"0", "-3"} {
		got, err := CalculateWithTax(base, d(tax), TaxType("bogus"))
		if err != nil {
			t.Fatalf("tax %s: CalculateWithTax() error = %v", tax, err)
		}
		expectShares(t, got, map[string]string{"A": "10", "B": "20"})
	}
}
