// Package calculator implements the balance aggregation and settlement
// optimization core. Both functions are pure: they see a snapshot of the
// room history and allocate only local working data, so they are safe to
// call from any goroutine.
package calculator

// ExpenseForBalance carries the minimal expense information needed for
// balance calculations.
type ExpenseForBalance struct {
	PayerID string
	Shares  []ShareForBalance
}

// ShareForBalance assigns a portion of an expense to one ower.
type ShareForBalance struct {
	ParticipantID string
	Amount        float64
}

// TransferForBalance carries the minimal transfer information needed for
// balance calculations.
type TransferForBalance struct {
	FromID string
	ToID   string
	Amount float64
}

// NetBalances reduces the full room history into one net balance per
// participant. Positive means the participant is owed money, negative means
// they owe. The sum over all participants is always zero (within rounding):
// every share and every transfer debits one side and credits the other by
// the same amount.
//
// Every id in participantIDs appears in the result, zero-activity
// participants at 0. Balances are rounded to cents after each update, not
// just at the end, so drift cannot accumulate across many small records.
// The function never fails; non-finite amounts contribute 0.
func NetBalances(participantIDs []string, expenses []ExpenseForBalance, transfers []TransferForBalance) map[string]float64 {
	net := make(map[string]float64, len(participantIDs))
	for _, id := range participantIDs {
		net[id] = 0
	}

	for _, exp := range expenses {
		for _, share := range exp.Shares {
			// A self-pay share is a no-op: the payer owing themselves
			// changes nothing.
			if share.ParticipantID == exp.PayerID {
				continue
			}
			amount := sanitize(share.Amount)
			net[share.ParticipantID] = Round2(net[share.ParticipantID] - amount)
			net[exp.PayerID] = Round2(net[exp.PayerID] + amount)
		}
	}

	// A completed transfer moves balances toward zero: the sender's debt
	// shrinks, the receiver's credit shrinks. Note the inverted signs
	// relative to expense shares.
	for _, tr := range transfers {
		amount := sanitize(tr.Amount)
		net[tr.FromID] = Round2(net[tr.FromID] + amount)
		net[tr.ToID] = Round2(net[tr.ToID] - amount)
	}

	return net
}
