package service

import "errors"

var (
	// ErrRoomExpired is returned when a mutation targets an expired room.
	ErrRoomExpired = errors.New("room has expired")

	// ErrInvalidAmount is returned for amounts that are not positive finite numbers.
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrUnknownParticipant is returned when a referenced participant is not in the room.
	ErrUnknownParticipant = errors.New("participant is not a member of this room")

	// ErrNoOwers is returned when an expense would end up with no shares.
	ErrNoOwers = errors.New("expense must be assigned to at least one participant")

	// ErrPercentSum is returned when percent shares do not sum to 100.
	ErrPercentSum = errors.New("percentages must sum to 100")

	// ErrShareSum is returned when custom share amounts do not sum to the expense amount.
	ErrShareSum = errors.New("share amounts must sum to the expense amount")

	// ErrRateUnavailable is returned when no stored rate covers the entry currency.
	ErrRateUnavailable = errors.New("no conversion rate available for currency")

	// ErrSelfTransfer is returned when a transfer names the same participant twice.
	ErrSelfTransfer = errors.New("cannot transfer to the same participant")
)
