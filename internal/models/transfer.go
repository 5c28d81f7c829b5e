package models

// Transfer represents a completed direct payment between two participants,
// either a voluntary payment or a confirmed settlement suggestion.
type Transfer struct {
	// ID is the unique identifier for the transfer (UUID format).
	ID string

	// RoomID is the room this transfer belongs to.
	RoomID string

	// FromID is the participant who paid.
	FromID string

	// ToID is the participant who received the payment.
	ToID string

	// Amount is the payment amount in the room's default currency.
	Amount float64

	// CreatedAt is the Unix timestamp when the transfer was recorded.
	CreatedAt int64
}
