// Package service implements the application operations over the storage
// and calculator layers. Services hold no state beyond their dependencies;
// every operation works on a fresh snapshot of the room history.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chotta-app/chotta/internal/auth"
	"github.com/chotta-app/chotta/internal/models"
	"github.com/chotta-app/chotta/internal/storage"
)

// RoomService manages room lifecycle and participants.
type RoomService struct {
	store storage.Store
	ttl   time.Duration
}

// NewRoomService creates a RoomService. ttl is the room lifetime granted at
// creation and added again on every extension.
func NewRoomService(store storage.Store, ttl time.Duration) *RoomService {
	return &RoomService{store: store, ttl: ttl}
}

// Create creates a new room expiring ttl from now.
func (s *RoomService) Create(ctx context.Context, name, defaultCurrency string) (*models.Room, error) {
	room := &models.Room{
		Name:      name,
		ExpiresAt: time.Now().Add(s.ttl).Unix(),
		Settings: models.RoomSettings{
			DefaultCurrency: defaultCurrency,
		},
	}

	if err := s.store.CreateRoom(ctx, room); err != nil {
		slog.Error("CreateRoom failed", "error", err)
		return nil, err
	}
	slog.Info("Room created", "room_id", room.ID, "expires_at", room.ExpiresAt)
	return room, nil
}

// Get retrieves a room. Expired rooms are still readable; callers decide
// what expiry means for them (the UI shows a read-only state).
func (s *RoomService) Get(ctx context.Context, roomID string) (*models.Room, error) {
	return s.store.GetRoom(ctx, roomID)
}

// activeRoom loads a room and rejects it if expired. All mutations go
// through this gate.
func (s *RoomService) activeRoom(ctx context.Context, roomID string) (*models.Room, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Expired(time.Now().Unix()) {
		return nil, fmt.Errorf("%w: room %s", ErrRoomExpired, roomID)
	}
	return room, nil
}

// RoomUpdate carries the changeable room fields; nil pointers are left as-is.
type RoomUpdate struct {
	Name            *string
	DefaultCurrency *string
	ExtraCurrencies *[]string
	NewPasscode     *string
}

// Update applies a settings update. If the room has a passcode set, the
// attempt must match before anything changes.
func (s *RoomService) Update(ctx context.Context, roomID, passcode string, upd RoomUpdate) (*models.Room, error) {
	room, err := s.activeRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := auth.VerifyPasscode(room.Settings.PasscodeHash, passcode); err != nil {
		return nil, err
	}

	if upd.Name != nil {
		room.Name = *upd.Name
	}
	if upd.DefaultCurrency != nil {
		room.Settings.DefaultCurrency = *upd.DefaultCurrency
	}
	if upd.ExtraCurrencies != nil {
		room.Settings.ExtraCurrencies = *upd.ExtraCurrencies
	}
	if upd.NewPasscode != nil {
		if *upd.NewPasscode == "" {
			room.Settings.PasscodeHash = ""
		} else {
			hash, err := auth.HashPasscode(*upd.NewPasscode)
			if err != nil {
				return nil, err
			}
			room.Settings.PasscodeHash = hash
		}
	}

	if err := s.store.UpdateRoom(ctx, room); err != nil {
		slog.Error("UpdateRoom failed", "room_id", roomID, "error", err)
		return nil, err
	}
	return room, nil
}

// Extend pushes the room expiry out by the configured ttl, measured from
// the current expiry if the room is still alive, from now if it lapsed.
// Extension revives an expired room; that is how the original behaves.
func (s *RoomService) Extend(ctx context.Context, roomID, passcode string) (*models.Room, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := auth.VerifyPasscode(room.Settings.PasscodeHash, passcode); err != nil {
		return nil, err
	}

	base := time.Now()
	if expiry := time.Unix(room.ExpiresAt, 0); expiry.After(base) {
		base = expiry
	}
	room.ExpiresAt = base.Add(s.ttl).Unix()

	if err := s.store.UpdateRoom(ctx, room); err != nil {
		slog.Error("Extend failed", "room_id", roomID, "error", err)
		return nil, err
	}
	slog.Info("Room extended", "room_id", roomID, "expires_at", room.ExpiresAt)
	return room, nil
}

// Delete removes a room and everything in it.
func (s *RoomService) Delete(ctx context.Context, roomID, passcode string) error {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if err := auth.VerifyPasscode(room.Settings.PasscodeHash, passcode); err != nil {
		return err
	}
	return s.store.DeleteRoom(ctx, roomID)
}

// AddParticipant adds a named participant to an active room.
func (s *RoomService) AddParticipant(ctx context.Context, roomID, name string) (*models.Participant, error) {
	if _, err := s.activeRoom(ctx, roomID); err != nil {
		return nil, err
	}

	p := &models.Participant{RoomID: roomID, Name: name}
	if err := s.store.AddParticipant(ctx, p); err != nil {
		slog.Error("AddParticipant failed", "room_id", roomID, "error", err)
		return nil, err
	}
	return p, nil
}

// Participants returns the room's participants.
func (s *RoomService) Participants(ctx context.Context, roomID string) ([]*models.Participant, error) {
	return s.store.ListParticipants(ctx, roomID)
}

// RenameParticipant changes a participant's display name.
func (s *RoomService) RenameParticipant(ctx context.Context, roomID, participantID, name string) error {
	if _, err := s.activeRoom(ctx, roomID); err != nil {
		return err
	}
	return s.store.RenameParticipant(ctx, participantID, name)
}

// RemoveParticipant removes a participant from an active room.
func (s *RoomService) RemoveParticipant(ctx context.Context, roomID, participantID string) error {
	if _, err := s.activeRoom(ctx, roomID); err != nil {
		return err
	}
	return s.store.DeleteParticipant(ctx, participantID)
}
