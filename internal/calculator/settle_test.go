package calculator

import (
	"math"
	"testing"
)

// applySettlements replays the suggested payments against the balance map
// and returns the residual per participant.
func applySettlements(net map[string]float64, settlements []Settlement) map[string]float64 {
	residual := make(map[string]float64, len(net))
	for id, bal := range net {
		residual[id] = bal
	}
	for _, s := range settlements {
		residual[s.FromID] += s.Amount
		residual[s.ToID] -= s.Amount
	}
	return residual
}

func TestSettle(t *testing.T) {
	tests := []struct {
		name string
		net  map[string]float64
		want []Settlement
	}{
		{
			name: "empty map yields no settlements",
			net:  map[string]float64{},
			want: nil,
		},
		{
			name: "all zero yields no settlements",
			net:  map[string]float64{"a": 0, "b": 0, "c": 0},
			want: nil,
		},
		{
			name: "dust inside the tolerance band is ignored",
			net:  map[string]float64{"a": 0.01, "b": -0.01, "c": 0.005},
			want: nil,
		},
		{
			name: "two equal debtors pay one creditor",
			net:  map[string]float64{"a": 20, "b": -10, "c": -10},
			want: []Settlement{
				// tie on magnitude breaks by id: b before c
				{FromID: "b", ToID: "a", Amount: 10},
				{FromID: "c", ToID: "a", Amount: 10},
			},
		},
		{
			name: "single pair",
			net:  map[string]float64{"a": 50, "b": -50},
			want: []Settlement{
				{FromID: "b", ToID: "a", Amount: 50},
			},
		},
		{
			name: "after a direct transfer only one debt remains",
			net:  map[string]float64{"a": 10, "b": 0, "c": -10},
			want: []Settlement{
				{FromID: "c", ToID: "a", Amount: 10},
			},
		},
		{
			name: "largest debtor matched with largest creditor first",
			net:  map[string]float64{"a": 70, "b": 30, "c": -60, "d": -40},
			want: []Settlement{
				{FromID: "c", ToID: "a", Amount: 60},
				{FromID: "d", ToID: "a", Amount: 10},
				{FromID: "d", ToID: "b", Amount: 30},
			},
		},
		{
			name: "uneven three-way rounding split",
			net:  map[string]float64{"a": 66.67, "b": -33.33, "c": -33.34},
			want: []Settlement{
				{FromID: "c", ToID: "a", Amount: 33.34},
				{FromID: "b", ToID: "a", Amount: 33.33},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Settle(tt.net)

			if len(got) != len(tt.want) {
				t.Fatalf("got %d settlements %v, want %d", len(got), got, len(tt.want))
			}
			for i, want := range tt.want {
				if got[i].FromID != want.FromID || got[i].ToID != want.ToID {
					t.Errorf("settlement[%d] = %s->%s, want %s->%s",
						i, got[i].FromID, got[i].ToID, want.FromID, want.ToID)
				}
				if math.Abs(got[i].Amount-want.Amount) > 0.001 {
					t.Errorf("settlement[%d] amount = %v, want %v", i, got[i].Amount, want.Amount)
				}
			}
		})
	}
}

func TestSettle_Properties(t *testing.T) {
	nets := []map[string]float64{
		{"a": 20, "b": -10, "c": -10},
		{"a": 66.67, "b": -33.33, "c": -33.34},
		{"a": 100.55, "b": -0.55, "c": -50, "d": -50},
		{"a": 12.34, "b": 43.21, "c": -20, "d": -20, "e": -15.55},
		{"a": 0.02, "b": -0.02},
	}

	for _, net := range nets {
		settlements := Settle(net)

		nonZero := 0
		for _, bal := range net {
			if math.Abs(bal) > Tolerance {
				nonZero++
			}
		}

		// Termination bound: each payment fully resolves at least one party.
		if nonZero > 0 && len(settlements) > nonZero-1 {
			t.Errorf("net %v: %d settlements exceeds bound %d", net, len(settlements), nonZero-1)
		}

		// Positivity: suggestions at or below the tolerance are never emitted.
		for _, s := range settlements {
			if s.Amount <= Tolerance {
				t.Errorf("net %v: non-positive settlement %+v", net, s)
			}
		}

		// Settlement conservation: replaying the payments leaves every
		// participant within the tolerance band.
		for id, residual := range applySettlements(net, settlements) {
			if math.Abs(residual) > Tolerance {
				t.Errorf("net %v: participant %s left with residual %v", net, id, residual)
			}
		}
	}
}

func TestSettle_Deterministic(t *testing.T) {
	// Map iteration order is randomized in Go; the id tie-break must make
	// the output stable across calls anyway.
	net := map[string]float64{"a": 10, "b": 10, "c": -10, "d": -10}

	first := Settle(net)
	for i := 0; i < 50; i++ {
		again := Settle(net)
		if len(again) != len(first) {
			t.Fatalf("run %d: got %d settlements, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: settlement[%d] = %+v, want %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestSettle_EndToEnd(t *testing.T) {
	// Full pipeline over the rounding-stress scenario: 100 paid by a,
	// split 33.33 / 33.33 / 33.34.
	net := NetBalances(
		[]string{"a", "b", "c"},
		[]ExpenseForBalance{
			{
				PayerID: "a",
				Shares: []ShareForBalance{
					{ParticipantID: "a", Amount: 33.33},
					{ParticipantID: "b", Amount: 33.33},
					{ParticipantID: "c", Amount: 33.34},
				},
			},
		},
		nil,
	)

	settlements := Settle(net)

	totalToPayer := 0.0
	for _, s := range settlements {
		if s.ToID != "a" {
			t.Errorf("unexpected creditor %s", s.ToID)
		}
		totalToPayer += s.Amount
	}
	if math.Abs(totalToPayer-66.67) > 0.01 {
		t.Errorf("total paid to a = %v, want 66.67", totalToPayer)
	}
}
