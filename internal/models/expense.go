package models

// DistributionType describes how an expense was divided among participants.
type DistributionType string

const (
	// DistributionEqual splits the amount equally among all room participants.
	DistributionEqual DistributionType = "equal"
	// DistributionSelected splits the amount equally among a chosen subset.
	DistributionSelected DistributionType = "selected"
	// DistributionPercent assigns each ower a percentage of the amount.
	DistributionPercent DistributionType = "percent"
	// DistributionCustom assigns each ower an explicit amount.
	DistributionCustom DistributionType = "custom"
)

// Expense represents a payment made by one participant on behalf of several.
// The Shares record who owes what; their sum should equal Amount (the
// balance calculator tolerates small rounding drift, it never re-validates).
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// RoomID is the room this expense belongs to.
	RoomID string

	// Title is the human-readable description (e.g. "Groceries").
	Title string

	// PaidBy is the participant id of the payer.
	PaidBy string

	// Amount is the expense total in the room's default currency,
	// already converted from the entry currency.
	Amount float64

	// OriginalAmount is the amount as entered, in OriginalCurrency.
	OriginalAmount float64

	// OriginalCurrency is the ISO 4217 code the expense was entered in.
	OriginalCurrency string

	// Distribution records which split mode produced the shares.
	Distribution DistributionType

	// Shares assigns portions of Amount to the owing participants.
	Shares []ExpenseShare

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ExpenseShare assigns a portion of an expense to one participant.
type ExpenseShare struct {
	// ParticipantID is the ower.
	ParticipantID string

	// Amount is this participant's portion, in the room's default currency.
	Amount float64

	// Percent is the entered percentage for percent-distributed expenses;
	// zero otherwise.
	Percent float64
}
