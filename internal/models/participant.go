package models

// Participant represents a member of a room.
// Identity is the ID; names are display-only and may be duplicated.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// RoomID is the room this participant belongs to.
	RoomID string

	// Name is the display name chosen when joining the room.
	Name string
}
