// Package auth implements the optional room admin passcode.
//
// Rooms are open by URL; the passcode only gates admin operations
// (settings, expiry extension, room deletion) once one has been set.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPasscode = errors.New("invalid room passcode")
	ErrWeakPasscode    = errors.New("passcode must be at least 4 characters")
)

// HashPasscode validates and hashes an admin passcode for storage.
func HashPasscode(passcode string) (string, error) {
	if len(passcode) < 4 {
		return "", ErrWeakPasscode
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passcode: %w", err)
	}
	return string(hash), nil
}

// VerifyPasscode checks a passcode attempt against the stored hash.
// An empty stored hash means the room has no passcode and everything passes.
func VerifyPasscode(hash, passcode string) error {
	if hash == "" {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)); err != nil {
		return ErrInvalidPasscode
	}
	return nil
}
