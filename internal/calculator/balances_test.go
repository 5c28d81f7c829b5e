package calculator

import (
	"math"
	"testing"
)

func TestNetBalances(t *testing.T) {
	tests := []struct {
		name         string
		participants []string
		expenses     []ExpenseForBalance
		transfers    []TransferForBalance
		want         map[string]float64
	}{
		{
			name:         "empty room yields all-zero map",
			participants: []string{"a", "b", "c"},
			want:         map[string]float64{"a": 0, "b": 0, "c": 0},
		},
		{
			name:         "equal three-way split",
			participants: []string{"a", "b", "c"},
			expenses: []ExpenseForBalance{
				{
					PayerID: "a",
					Shares: []ShareForBalance{
						{ParticipantID: "a", Amount: 10},
						{ParticipantID: "b", Amount: 10},
						{ParticipantID: "c", Amount: 10},
					},
				},
			},
			want: map[string]float64{"a": 20, "b": -10, "c": -10},
		},
		{
			name:         "transfer moves balances toward zero",
			participants: []string{"a", "b", "c"},
			expenses: []ExpenseForBalance{
				{
					PayerID: "a",
					Shares: []ShareForBalance{
						{ParticipantID: "a", Amount: 10},
						{ParticipantID: "b", Amount: 10},
						{ParticipantID: "c", Amount: 10},
					},
				},
			},
			transfers: []TransferForBalance{
				{FromID: "b", ToID: "a", Amount: 10},
			},
			want: map[string]float64{"a": 10, "b": 0, "c": -10},
		},
		{
			name:         "expense assigned entirely to the other person",
			participants: []string{"a", "b"},
			expenses: []ExpenseForBalance{
				{
					PayerID: "a",
					Shares:  []ShareForBalance{{ParticipantID: "b", Amount: 50}},
				},
			},
			want: map[string]float64{"a": 50, "b": -50},
		},
		{
			name:         "self-pay share is a no-op",
			participants: []string{"a", "b"},
			expenses: []ExpenseForBalance{
				{
					PayerID: "a",
					Shares:  []ShareForBalance{{ParticipantID: "a", Amount: 42}},
				},
			},
			want: map[string]float64{"a": 0, "b": 0},
		},
		{
			name:         "transfer without any expense goes negative for receiver",
			participants: []string{"a", "b"},
			transfers: []TransferForBalance{
				{FromID: "a", ToID: "b", Amount: 25},
			},
			want: map[string]float64{"a": 25, "b": -25},
		},
		{
			name:         "non-finite amounts contribute nothing",
			participants: []string{"a", "b"},
			expenses: []ExpenseForBalance{
				{
					PayerID: "a",
					Shares: []ShareForBalance{
						{ParticipantID: "b", Amount: math.NaN()},
						{ParticipantID: "b", Amount: math.Inf(1)},
						{ParticipantID: "b", Amount: 10},
					},
				},
			},
			want: map[string]float64{"a": 10, "b": -10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetBalances(tt.participants, tt.expenses, tt.transfers)

			if len(got) != len(tt.want) {
				t.Fatalf("got %d balances, want %d", len(got), len(tt.want))
			}
			for id, want := range tt.want {
				bal, ok := got[id]
				if !ok {
					t.Errorf("participant %q missing from balance map", id)
					continue
				}
				if math.Abs(bal-want) > 0.001 {
					t.Errorf("balance[%q] = %v, want %v", id, bal, want)
				}
			}
		})
	}
}

func TestNetBalances_IncludesIdsOnlySeenInRecords(t *testing.T) {
	// A share referencing someone missing from the participant list still
	// lands in the map instead of being lost.
	got := NetBalances(
		[]string{"a"},
		[]ExpenseForBalance{
			{PayerID: "a", Shares: []ShareForBalance{{ParticipantID: "ghost", Amount: 5}}},
		},
		nil,
	)

	if math.Abs(got["ghost"]+5) > 0.001 {
		t.Errorf("balance[ghost] = %v, want -5", got["ghost"])
	}
	if math.Abs(got["a"]-5) > 0.001 {
		t.Errorf("balance[a] = %v, want 5", got["a"])
	}
}

func TestNetBalances_Conservation(t *testing.T) {
	// Many small uneven records; the sum must stay at zero because each
	// update debits one side and credits the other by the same amount.
	participants := []string{"a", "b", "c", "d"}
	var expenses []ExpenseForBalance
	for i := 0; i < 500; i++ {
		payer := participants[i%4]
		expenses = append(expenses, ExpenseForBalance{
			PayerID: payer,
			Shares: []ShareForBalance{
				{ParticipantID: participants[(i+1)%4], Amount: 3.33},
				{ParticipantID: participants[(i+2)%4], Amount: 3.33},
				{ParticipantID: participants[(i+3)%4], Amount: 3.34},
			},
		})
	}
	transfers := []TransferForBalance{
		{FromID: "b", ToID: "a", Amount: 17.49},
		{FromID: "c", ToID: "d", Amount: 0.01},
	}

	net := NetBalances(participants, expenses, transfers)

	sum := 0.0
	for _, bal := range net {
		sum += bal
	}
	if math.Abs(sum) > 0.01 {
		t.Errorf("balances sum to %v, want 0", sum)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{10.004, 10.0},
		{10.006, 10.01},
		// 0.125 is exactly representable, so this really exercises the
		// half-away-from-zero behavior (banker's rounding would give 0.12).
		{0.125, 0.13},
		{-0.125, -0.13},
		{-0.004999, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
