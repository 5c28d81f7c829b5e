package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chotta-app/chotta/internal/models"
	"github.com/chotta-app/chotta/internal/storage"
)

// CreateRoom persists a new room and its settings to the database.
func (s *SQLiteStore) CreateRoom(ctx context.Context, room *models.Room) error {
	// Generate defaults if not set
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	if room.CreatedAt == 0 {
		room.CreatedAt = time.Now().Unix()
	}
	if room.Settings.DefaultCurrency == "" {
		room.Settings.DefaultCurrency = "EUR"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO rooms (id, name, created_at, expires_at) VALUES (?, ?, ?, ?)",
		room.ID, room.Name, room.CreatedAt, room.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO room_settings (room_id, default_currency, extra_currencies, passcode_hash) VALUES (?, ?, ?, ?)",
		room.ID, room.Settings.DefaultCurrency,
		strings.Join(room.Settings.ExtraCurrencies, ","), room.Settings.PasscodeHash,
	)
	if err != nil {
		return fmt.Errorf("failed to insert room settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRoom retrieves a room by ID, including its settings.
func (s *SQLiteStore) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	room := &models.Room{}
	var extras string
	err := s.db.QueryRowContext(ctx,
		`SELECT r.id, r.name, r.created_at, r.expires_at,
		        st.default_currency, st.extra_currencies, st.passcode_hash
		 FROM rooms r JOIN room_settings st ON st.room_id = r.id
		 WHERE r.id = ?`,
		roomID,
	).Scan(&room.ID, &room.Name, &room.CreatedAt, &room.ExpiresAt,
		&room.Settings.DefaultCurrency, &extras, &room.Settings.PasscodeHash)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: room %s", storage.ErrNotFound, roomID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if extras != "" {
		room.Settings.ExtraCurrencies = strings.Split(extras, ",")
	}

	return room, nil
}

// UpdateRoom updates a room's name, expiry and settings.
func (s *SQLiteStore) UpdateRoom(ctx context.Context, room *models.Room) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE rooms SET name = ?, expires_at = ? WHERE id = ?",
		room.Name, room.ExpiresAt, room.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: room %s", storage.ErrNotFound, room.ID)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE room_settings SET default_currency = ?, extra_currencies = ?, passcode_hash = ? WHERE room_id = ?",
		room.Settings.DefaultCurrency, strings.Join(room.Settings.ExtraCurrencies, ","),
		room.Settings.PasscodeHash, room.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update room settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteRoom removes a room; participants, expenses and transfers cascade.
func (s *SQLiteStore) DeleteRoom(ctx context.Context, roomID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM rooms WHERE id = ?", roomID)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: room %s", storage.ErrNotFound, roomID)
	}
	return nil
}

// AddParticipant adds a participant to a room.
func (s *SQLiteStore) AddParticipant(ctx context.Context, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO participants (id, room_id, name) VALUES (?, ?, ?)",
		p.ID, p.RoomID, p.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// ListParticipants returns a room's participants ordered by name.
func (s *SQLiteStore) ListParticipants(ctx context.Context, roomID string) ([]*models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, room_id, name FROM participants WHERE room_id = ? ORDER BY name, id",
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p := &models.Participant{}
		if err := rows.Scan(&p.ID, &p.RoomID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

// RenameParticipant changes a participant's display name.
func (s *SQLiteStore) RenameParticipant(ctx context.Context, participantID, name string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE participants SET name = ? WHERE id = ?",
		name, participantID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename participant: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: participant %s", storage.ErrNotFound, participantID)
	}
	return nil
}

// DeleteParticipant removes a participant.
func (s *SQLiteStore) DeleteParticipant(ctx context.Context, participantID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM participants WHERE id = ?", participantID)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: participant %s", storage.ErrNotFound, participantID)
	}
	return nil
}
