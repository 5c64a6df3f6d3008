package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Transfer is a payment from one participant to another.
type Transfer struct {
	From   string          `json:"from"`   // Person who owes
	To     string          `json:"to"`     // Person who is owed
	Amount decimal.Decimal `json:"amount"`
}

type balance struct {
	name string
	net  decimal.Decimal // Positive = owed money, negative = owes money
}

// SettleUp works out who pays whom once the bill has been paid.
//
// owed is what each participant owes for the bill and paid is what each
// participant actually put down. Net balances (paid - owed) are matched
// greedily, largest debt against largest credit, so the number of transfers
// stays small. Amounts under a cent are dropped.
func SettleUp(owed SplitResult, paid []Share) []Transfer {
	var order []string
	nets := make(map[string]decimal.Decimal)
	add := func(name string, amount decimal.Decimal) {
		if _, ok := nets[name]; !ok {
			order = append(order, name)
		}
		nets[name] = nets[name].Add(amount)
	}
	for _, s := range owed {
		add(s.Participant, s.Amount.Neg())
	}
	for _, s := range paid {
		add(s.Participant, s.Amount)
	}

	var debtors, creditors []balance
	for _, name := range order {
		net := nets[name]
		switch {
		case net.IsNegative():
			debtors = append(debtors, balance{name: name, net: net.Neg()})
		case net.IsPositive():
			creditors = append(creditors, balance{name: name, net: net})
		}
	}
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].net.GreaterThan(debtors[j].net) })
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].net.GreaterThan(creditors[j].net) })

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].net, creditors[j].net)
		if rounded := Round(amount); rounded.GreaterThanOrEqual(Cent) {
			transfers = append(transfers, Transfer{
				From:   debtors[i].name,
				To:     creditors[j].name,
				Amount: rounded,
			})
		}

		debtors[i].net = debtors[i].net.Sub(amount)
		creditors[j].net = creditors[j].net.Sub(amount)

		if debtors[i].net.LessThan(Cent) {
			i++
		}
		if creditors[j].net.LessThan(Cent) {
			j++
		}
	}
	return transfers
}
