package calculator

import (
	"math"
	"sort"
)

// Settlement is a suggested payment from a debtor to a creditor.
type Settlement struct {
	FromID string
	ToID   string
	Amount float64
}

// party is a working entry in the debtor or creditor list.
type party struct {
	id      string
	balance float64
}

// Settle produces an ordered list of payments that zero out the given net
// balances. It greedily matches the largest remaining debtor against the
// largest remaining creditor, so each emitted payment fully resolves at
// least one side; the list is therefore never longer than
// debtors + creditors - 1 entries.
//
// Balances within Tolerance of zero are dropped up front as rounding dust.
// Ties are broken by participant id so the output is deterministic for a
// given balance map (Go randomizes map iteration order, so sort stability
// alone would not be enough).
//
// This is a heuristic, not a minimum-transaction-count solver: that problem
// is NP-hard and the greedy result is good enough for room-sized groups.
func Settle(net map[string]float64) []Settlement {
	var debtors, creditors []party
	for id, balance := range net {
		switch {
		case balance < -Tolerance:
			debtors = append(debtors, party{id: id, balance: balance})
		case balance > Tolerance:
			creditors = append(creditors, party{id: id, balance: balance})
		}
	}

	// Largest debt first, largest credit first.
	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].balance != debtors[j].balance {
			return debtors[i].balance < debtors[j].balance
		}
		return debtors[i].id < debtors[j].id
	})
	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].balance != creditors[j].balance {
			return creditors[i].balance > creditors[j].balance
		}
		return creditors[i].id < creditors[j].id
	})

	var settlements []Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := Round2(math.Min(-debtor.balance, creditor.balance))
		if amount <= Tolerance {
			// Residual dust; nothing meaningful left to settle.
			break
		}

		settlements = append(settlements, Settlement{
			FromID: debtor.id,
			ToID:   creditor.id,
			Amount: amount,
		})

		debtor.balance = Round2(debtor.balance + amount)
		creditor.balance = Round2(creditor.balance - amount)

		// Advance past parties that are now settled.
		if debtor.balance > -Tolerance {
			i++
		}
		if creditor.balance < Tolerance {
			j++
		}
	}

	return settlements
}
