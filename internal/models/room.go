package models

// Room represents a shared-expense room.
type Room struct {
	// ID is the unique identifier for the room (UUID format).
	// The id doubles as the access credential: rooms are reachable by URL only.
	ID string

	// Name is the display name of the room. May be empty for fresh rooms.
	Name string

	// CreatedAt is the Unix timestamp when the room was created.
	CreatedAt int64

	// ExpiresAt is the Unix timestamp after which the room is read-only.
	// Rooms start with a 14-day lifetime and can be extended.
	ExpiresAt int64

	// Settings holds the room's currency configuration and optional passcode.
	Settings RoomSettings
}

// RoomSettings holds per-room configuration.
type RoomSettings struct {
	// DefaultCurrency is the ISO 4217 code all balances are kept in.
	DefaultCurrency string

	// ExtraCurrencies lists additional currencies expenses may be entered in.
	// Entered amounts are converted to DefaultCurrency at the stored rate.
	ExtraCurrencies []string

	// PasscodeHash is the bcrypt hash of the optional admin passcode.
	// Empty means admin operations (delete, extend, settings) are open.
	PasscodeHash string
}

// Expired reports whether the room is past its expiry at the given Unix time.
func (r *Room) Expired(now int64) bool {
	return r.ExpiresAt != 0 && now > r.ExpiresAt
}
