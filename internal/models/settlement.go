package models

// Settlement is a suggested payment that reduces outstanding imbalance.
// Settlements are derived values: they are recomputed from the room history
// on every query and never persisted. Confirming one inserts a Transfer
// with the same from/to/amount, which changes the next computation's input.
type Settlement struct {
	// FromID is the debtor who should pay.
	FromID string `json:"from"`

	// ToID is the creditor who should be paid.
	ToID string `json:"to"`

	// Amount is the suggested payment, always strictly positive.
	Amount float64 `json:"amount"`
}

// ParticipantStats aggregates one participant's activity for the stats view.
type ParticipantStats struct {
	ParticipantID string  `json:"participant_id"`
	Name          string  `json:"name"`
	TotalPaid     float64 `json:"total_paid"`  // expenses fronted for the room
	TotalShare    float64 `json:"total_share"` // sum of shares assigned to them
	Net           float64 `json:"net"`         // current net balance
}
