package calculator

import "testing"

func TestSettleUp(t *testing.T) {
	tests := []struct {
		name  string
		owed  SplitResult
		paid  []Share
		wants []Transfer
	}{
		{
			name: "single payer",
			owed: shares("A", "60", "B", "40", "C", "20"),
			paid: []Share{{Participant: "A", Amount: d("120")}},
			wants: []Transfer{
				{From: "B", To: "A", Amount: d("40")},
				{From: "C", To: "A", Amount: d("20")},
			},
		},
		{
			name: "two payers",
			owed: shares("A", "50", "B", "50", "C", "50"),
			paid: []Share{{Participant: "A", Amount: d("100")}, {Participant: "B", Amount: d("50")}},
			wants: []Transfer{
				{From: "C", To: "A", Amount: d("50")},
			},
		},
		{
			name: "largest debt settles against largest credit",
			owed: shares("A", "10", "B", "30", "C", "60"),
			paid: []Share{{Participant: "A", Amount: d("40")}, {Participant: "C", Amount: d("60")}},
			wants: []Transfer{
				{From: "B", To: "A", Amount: d("30")},
			},
		},
		{
			name: "payer outside the split",
			owed: shares("A", "25", "B", "25"),
			paid: []Share{{Participant: "Host", Amount: d("50")}},
			wants: []Transfer{
				{From: "A", To: "Host", Amount: d("25")},
				{From: "B", To: "Host", Amount: d("25")},
			},
		},
		{
			name:  "nobody paid yet",
			owed:  shares("A", "25", "B", "25"),
			paid:  nil,
			wants: nil,
		},
		{
			name:  "sub cent residue is dropped",
			owed:  shares("A", "33.33", "B", "33.33", "C", "33.33"),
			paid:  []Share{{Participant: "A", Amount: d("33.334")}, {Participant: "B", Amount: d("33.333")}, {Participant: "C", Amount: d("33.333")}},
			wants: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SettleUp(tt.owed, tt.paid)
			if len(got) != len(tt.wants) {
				t.Fatalf("got %d transfers %v, want %d", len(got), got, len(tt.wants))
			}
			for i, want := range tt.wants {
				if got[i].From != want.From || got[i].To != want.To || !got[i].Amount.Equal(want.Amount) {
					t.Errorf("transfer %d = %+v, want %+v", i, got[i], want)
				}
			}
		})
	}
}
