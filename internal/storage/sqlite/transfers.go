package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chotta-app/chotta/internal/models"
	"github.com/chotta-app/chotta/internal/storage"
)

// CreateTransfer persists a direct payment record.
func (s *SQLiteStore) CreateTransfer(ctx context.Context, transfer *models.Transfer) error {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	if transfer.CreatedAt == 0 {
		transfer.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO transfers (id, room_id, from_id, to_id, amount, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		transfer.ID, transfer.RoomID, transfer.FromID, transfer.ToID, transfer.Amount, transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer: %w", err)
	}
	return nil
}

// ListTransfers returns a room's transfers, newest first.
func (s *SQLiteStore) ListTransfers(ctx context.Context, roomID string) ([]*models.Transfer, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, room_id, from_id, to_id, amount, created_at FROM transfers WHERE room_id = ? ORDER BY created_at DESC, id",
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []*models.Transfer
	for rows.Next() {
		transfer := &models.Transfer{}
		if err := rows.Scan(&transfer.ID, &transfer.RoomID, &transfer.FromID,
			&transfer.ToID, &transfer.Amount, &transfer.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		transfers = append(transfers, transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfers: %w", err)
	}

	return transfers, nil
}

// DeleteTransfer removes a transfer.
func (s *SQLiteStore) DeleteTransfer(ctx context.Context, transferID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transfers WHERE id = ?", transferID)
	if err != nil {
		return fmt.Errorf("failed to delete transfer: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: transfer %s", storage.ErrNotFound, transferID)
	}
	return nil
}

// UpsertRate stores one base→target conversion rate.
func (s *SQLiteStore) UpsertRate(ctx context.Context, base, target string, rate float64, updatedAt int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO currency_rates (base_currency, target_currency, rate, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (base_currency, target_currency) DO UPDATE SET rate = excluded.rate, updated_at = excluded.updated_at`,
		base, target, rate, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rate %s->%s: %w", base, target, err)
	}
	return nil
}

// GetRates returns the stored rates from base to each target currency.
func (s *SQLiteStore) GetRates(ctx context.Context, base string, targets []string) (map[string]float64, error) {
	rates := make(map[string]float64, len(targets))
	if len(targets) == 0 {
		return rates, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(targets)), ",")
	args := make([]interface{}, 0, len(targets)+1)
	args = append(args, base)
	for _, target := range targets {
		args = append(args, target)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT target_currency, rate FROM currency_rates WHERE base_currency = ? AND target_currency IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get rates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var target string
		var rate float64
		if err := rows.Scan(&target, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		rates[target] = rate
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rates: %w", err)
	}

	return rates, nil
}
