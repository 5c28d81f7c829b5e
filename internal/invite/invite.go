// Package invite issues and validates signed room-join tokens.
//
// A join link embeds the room id in an HS256-signed token so rooms can be
// shared without exposing guessable URLs in the link itself. The token
// expires with the room.
package invite

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired invite token")

// Manager handles invite token generation and validation.
type Manager struct {
	secretKey []byte
}

// Claims represents the custom claims embedded in an invite token.
type Claims struct {
	RoomID string `json:"room_id"`
	jwt.RegisteredClaims
}

// NewManager creates an invite manager with the given signing secret.
// secretKey should be a strong random string (e.g., 32 bytes).
func NewManager(secretKey string) *Manager {
	return &Manager{secretKey: []byte(secretKey)}
}

// Generate creates an invite token for the room, valid until expiresAt.
func (m *Manager) Generate(roomID string, expiresAt time.Time) (string, error) {
	claims := &Claims{
		RoomID: roomID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign invite token: %w", err)
	}

	return tokenString, nil
}

// Validate parses an invite token and returns the room id it grants.
func (m *Manager) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.RoomID == "" {
		return "", ErrInvalidToken
	}

	return claims.RoomID, nil
}
